package resources

import (
	"strings"

	"agrosite/internal/models"
)

var subjectLabels = map[string]string{
	models.SubjectGeneral:      "General Inquiry",
	models.SubjectService:      "Service Information",
	models.SubjectConsultation: "Free Consultation",
	models.SubjectSupport:      "Technical Support",
	models.SubjectPartnership:  "Partnership Opportunity",
	models.SubjectOther:        "Other",
}

var contactStatusLabels = map[string]string{
	models.ContactStatusNew:      "New",
	models.ContactStatusRead:     "Read",
	models.ContactStatusReplied:  "Replied",
	models.ContactStatusArchived: "Archived",
}

// ContactResource is the admin payload for a contact, carrying the full
// submission and triage metadata.
type ContactResource struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Subject            string  `json:"subject"`
	SubjectLabel       string  `json:"subject_label"`
	Message            string  `json:"message"`
	Status             string  `json:"status"`
	StatusLabel        string  `json:"status_label"`
	IPAddress          string  `json:"ip_address"`
	UserAgent          string  `json:"user_agent"`
	RepliedAt          *string `json:"replied_at"`
	FormattedRepliedAt *string `json:"formatted_replied_at"`
	RepliedBy          *uint   `json:"replied_by"`
	FormattedCreatedAt string  `json:"formatted_created_at"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// PublicContactResource is the confirmation payload returned to the
// submitter: the email is masked and only a preview of the message is
// echoed back.
type PublicContactResource struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Subject            string `json:"subject"`
	SubjectLabel       string `json:"subject_label"`
	MessagePreview     string `json:"message_preview"`
	Status             string `json:"status"`
	StatusLabel        string `json:"status_label"`
	FormattedCreatedAt string `json:"formatted_created_at"`
	CreatedAt          string `json:"created_at"`
}

// NewContactResource builds the admin payload for a contact.
func NewContactResource(c *models.Contact) ContactResource {
	resource := ContactResource{
		ID:                 c.ID,
		Name:               c.Name,
		Email:              c.Email,
		Phone:              c.Phone,
		Subject:            c.Subject,
		SubjectLabel:       labelFor(subjectLabels, c.Subject),
		Message:            c.Message,
		Status:             c.Status,
		StatusLabel:        labelFor(contactStatusLabels, c.Status),
		IPAddress:          c.IPAddress,
		UserAgent:          c.UserAgent,
		RepliedBy:          c.RepliedBy,
		FormattedCreatedAt: c.CreatedAt.Format(displayTimeLayout),
		CreatedAt:          isoTime(c.CreatedAt),
		UpdatedAt:          isoTime(c.UpdatedAt),
	}
	if c.RepliedAt != nil {
		iso := isoTime(*c.RepliedAt)
		formatted := c.RepliedAt.Format(displayTimeLayout)
		resource.RepliedAt = &iso
		resource.FormattedRepliedAt = &formatted
	}
	return resource
}

// NewPublicContactResource builds the submitter-facing payload for a
// contact.
func NewPublicContactResource(c *models.Contact) PublicContactResource {
	return PublicContactResource{
		ID:                 c.ID,
		Name:               c.Name,
		Email:              MaskEmail(c.Email),
		Subject:            c.Subject,
		SubjectLabel:       labelFor(subjectLabels, c.Subject),
		MessagePreview:     MessagePreview(c.Message),
		Status:             c.Status,
		StatusLabel:        labelFor(contactStatusLabels, c.Status),
		FormattedCreatedAt: c.CreatedAt.Format(displayTimeLayout),
		CreatedAt:          isoTime(c.CreatedAt),
	}
}

// NewContactCollection builds admin payloads for a contact list.
func NewContactCollection(contacts []models.Contact) []ContactResource {
	out := make([]ContactResource, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResource(&contacts[i]))
	}
	return out
}

// MaskEmail hides the local part of an address except its first two
// characters, one star per hidden character.
func MaskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		return email
	}
	local := parts[0]
	visible := 2
	if len(local) < visible {
		visible = len(local)
	}
	return local[:visible] + strings.Repeat("*", len(local)-visible) + "@" + parts[1]
}

// MessagePreview returns the first 100 characters of a message, appending an
// ellipsis only when the original is longer.
func MessagePreview(message string) string {
	const limit = 100
	runes := []rune(message)
	if len(runes) <= limit {
		return message
	}
	return string(runes[:limit]) + "..."
}
