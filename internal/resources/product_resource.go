package resources

import (
	"agrosite/internal/models"
)

const productImageDir = "products"

var productCategoryLabels = map[string]string{
	models.CategorySeeds:       "Seeds",
	models.CategoryFertilizers: "Fertilizers",
	models.CategoryEquipment:   "Equipment",
	models.CategoryTools:       "Tools",
}

var productStatusLabels = map[string]string{
	models.ProductStatusActive:     "Active",
	models.ProductStatusInactive:   "Inactive",
	models.ProductStatusOutOfStock: "Out of Stock",
}

// ProductResource is the API payload for a product.
type ProductResource struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	CategoryLabel  string  `json:"category_label"`
	Price          string  `json:"price"`
	Currency       string  `json:"currency"`
	FormattedPrice string  `json:"formatted_price"`
	ImageURL       string  `json:"image_url"`
	FullImageURL   *string `json:"full_image_url"`
	StockQuantity  int     `json:"stock_quantity"`
	Status         string  `json:"status"`
	StatusLabel    string  `json:"status_label"`
	IsInStock      bool    `json:"is_in_stock"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// NewProductResource builds the payload for a product. storageBaseURL is the
// public root under which entity image directories are served.
func NewProductResource(p *models.Product, storageBaseURL string) ProductResource {
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}
	return ProductResource{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		CategoryLabel:  labelFor(productCategoryLabels, p.Category),
		Price:          formatAmount(p.Price),
		Currency:       currency,
		FormattedPrice: currency + " " + formatAmount(p.Price),
		ImageURL:       p.ImageURL,
		FullImageURL:   fullImageURL(p.ImageURL, storageBaseURL, productImageDir),
		StockQuantity:  p.StockQuantity,
		Status:         p.Status,
		StatusLabel:    labelFor(productStatusLabels, p.Status),
		IsInStock:      p.IsInStock(),
		IsActive:       p.IsActive(),
		CreatedAt:      isoTime(p.CreatedAt),
		UpdatedAt:      isoTime(p.UpdatedAt),
	}
}

// NewProductCollection builds payloads for a product list.
func NewProductCollection(products []models.Product, storageBaseURL string) []ProductResource {
	out := make([]ProductResource, 0, len(products))
	for i := range products {
		out = append(out, NewProductResource(&products[i], storageBaseURL))
	}
	return out
}

// labelFor resolves a human label, falling back to a title-cased raw value.
func labelFor(labels map[string]string, value string) string {
	if label, ok := labels[value]; ok {
		return label
	}
	return titleCase(value)
}
