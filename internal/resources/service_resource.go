package resources

import (
	"agrosite/internal/models"
)

const serviceImageDir = "services"

var serviceStatusLabels = map[string]string{
	models.ServiceStatusActive:   "Active",
	models.ServiceStatusInactive: "Inactive",
	models.ServiceStatusPending:  "Pending",
}

var priceTypeLabels = map[string]string{
	models.PriceTypeFixed:   "Fixed",
	models.PriceTypeMonthly: "Monthly",
	models.PriceTypeHourly:  "Hourly",
	models.PriceTypePerUnit: "Per Unit",
}

// Per-period suffix used in formatted prices ("$12.50 / month"). Fixed
// prices carry no suffix.
var priceTypeSuffixes = map[string]string{
	models.PriceTypeFixed:   "",
	models.PriceTypeMonthly: "month",
	models.PriceTypeHourly:  "hour",
	models.PriceTypePerUnit: "unit",
}

// ServiceResource is the API payload for a service.
type ServiceResource struct {
	ID             uint    `json:"id"`
	ServiceID      string  `json:"service_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	Icon           string  `json:"icon"`
	Price          *string `json:"price"`
	PriceType      string  `json:"price_type"`
	PriceTypeLabel *string `json:"price_type_label"`
	FormattedPrice *string `json:"formatted_price"`
	ActiveClients  int     `json:"active_clients"`
	Status         string  `json:"status"`
	StatusLabel    string  `json:"status_label"`
	ImageURL       string  `json:"image_url"`
	FullImageURL   *string `json:"full_image_url"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// NewServiceResource builds the payload for a service.
func NewServiceResource(s *models.Service, storageBaseURL string) ServiceResource {
	resource := ServiceResource{
		ID:            s.ID,
		ServiceID:     s.ServiceID,
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		Icon:          s.Icon,
		PriceType:     s.PriceType,
		ActiveClients: s.ActiveClients,
		Status:        s.Status,
		StatusLabel:   labelFor(serviceStatusLabels, s.Status),
		ImageURL:      s.ImageURL,
		FullImageURL:  fullImageURL(s.ImageURL, storageBaseURL, serviceImageDir),
		IsActive:      s.IsActive(),
		CreatedAt:     isoTime(s.CreatedAt),
		UpdatedAt:     isoTime(s.UpdatedAt),
	}

	if s.PriceType != "" {
		label := labelFor(priceTypeLabels, s.PriceType)
		resource.PriceTypeLabel = &label
	}

	if s.Price != nil {
		price := formatAmount(*s.Price)
		resource.Price = &price

		formatted := "$" + price
		if suffix := priceTypeSuffixes[s.PriceType]; suffix != "" {
			formatted += " / " + suffix
		}
		resource.FormattedPrice = &formatted
	}

	return resource
}

// NewServiceCollection builds payloads for a service list.
func NewServiceCollection(services []models.Service, storageBaseURL string) []ServiceResource {
	out := make([]ServiceResource, 0, len(services))
	for i := range services {
		out = append(out, NewServiceResource(&services[i], storageBaseURL))
	}
	return out
}
