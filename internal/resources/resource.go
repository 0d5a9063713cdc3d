// Package resources maps persisted records to API response payloads. All
// computed fields (labels, formatted values, public URLs) are derived here
// at serialization time and never stored.
package resources

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Layout for the human-readable timestamps in responses.
const displayTimeLayout = "January 2, 2006 at 3:04 PM"

// fullImageURL resolves a stored image reference to a public URL. Values
// that are already absolute URLs pass through; filenames are prefixed with
// the storage base URL and the entity directory.
func fullImageURL(imageURL, baseURL, dir string) *string {
	if imageURL == "" {
		return nil
	}
	if u, err := url.Parse(imageURL); err == nil && u.Scheme != "" && u.Host != "" {
		return &imageURL
	}
	full := strings.TrimRight(baseURL, "/") + "/" + dir + "/" + imageURL
	return &full
}

// formatAmount renders a price with two decimals.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// titleCase upper-cases the first letter, for labels of unexpected values.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
