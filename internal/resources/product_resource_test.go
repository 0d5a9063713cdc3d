package resources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agrosite/internal/models"
	"agrosite/internal/resources"
)

func TestNewProductResource(t *testing.T) {
	product := &models.Product{
		ID:            1,
		Name:          "Organic Corn Seeds",
		Category:      models.CategorySeeds,
		Price:         12.5,
		Currency:      "USD",
		ImageURL:      "1731830000_ab12cd34ef.jpg",
		StockQuantity: 40,
		Status:        models.ProductStatusActive,
	}

	resource := resources.NewProductResource(product, "https://cdn.example.com/storage")

	assert.Equal(t, "12.50", resource.Price)
	assert.Equal(t, "USD 12.50", resource.FormattedPrice)
	assert.Equal(t, "Seeds", resource.CategoryLabel)
	assert.Equal(t, "Active", resource.StatusLabel)
	assert.True(t, resource.IsInStock)
	assert.True(t, resource.IsActive)
	if assert.NotNil(t, resource.FullImageURL) {
		assert.Equal(t, "https://cdn.example.com/storage/products/1731830000_ab12cd34ef.jpg", *resource.FullImageURL)
	}
}

func TestNewProductResource_AbsoluteImageURLPassesThrough(t *testing.T) {
	product := &models.Product{
		ID:       2,
		Name:     "Compost Bin",
		Category: models.CategoryEquipment,
		Price:    80,
		Currency: "USD",
		ImageURL: "https://images.example.com/bin.png",
		Status:   models.ProductStatusOutOfStock,
	}

	resource := resources.NewProductResource(product, "https://cdn.example.com/storage")

	if assert.NotNil(t, resource.FullImageURL) {
		assert.Equal(t, "https://images.example.com/bin.png", *resource.FullImageURL)
	}
	assert.Equal(t, "Out of Stock", resource.StatusLabel)
	assert.False(t, resource.IsInStock)
}

func TestNewProductResource_NoImage(t *testing.T) {
	product := &models.Product{ID: 3, Name: "Hand Trowel", Category: models.CategoryTools, Price: 9.99}

	resource := resources.NewProductResource(product, "https://cdn.example.com/storage")

	assert.Nil(t, resource.FullImageURL)
	assert.Equal(t, "USD", resource.Currency, "missing currency defaults to USD")
}

func TestNewServiceResource_PriceFormatting(t *testing.T) {
	price := 12.5
	service := &models.Service{
		ID:        1,
		ServiceID: "S001",
		Name:      "Soil Analysis",
		Category:  "consulting",
		Price:     &price,
		PriceType: models.PriceTypeMonthly,
		Status:    models.ServiceStatusActive,
	}

	resource := resources.NewServiceResource(service, "https://cdn.example.com/storage")

	if assert.NotNil(t, resource.Price) {
		assert.Equal(t, "12.50", *resource.Price)
	}
	if assert.NotNil(t, resource.FormattedPrice) {
		assert.Equal(t, "$12.50 / month", *resource.FormattedPrice)
	}
	if assert.NotNil(t, resource.PriceTypeLabel) {
		assert.Equal(t, "Monthly", *resource.PriceTypeLabel)
	}
}

func TestNewServiceResource_FixedAndNilPrice(t *testing.T) {
	price := 200.0
	fixed := &models.Service{ID: 2, ServiceID: "S002", Name: "Field Survey", Price: &price, PriceType: models.PriceTypeFixed}
	resource := resources.NewServiceResource(fixed, "")
	if assert.NotNil(t, resource.FormattedPrice) {
		assert.Equal(t, "$200.00", *resource.FormattedPrice, "fixed prices carry no period suffix")
	}

	free := &models.Service{ID: 3, ServiceID: "S003", Name: "Intro Call"}
	resource = resources.NewServiceResource(free, "")
	assert.Nil(t, resource.Price)
	assert.Nil(t, resource.FormattedPrice)
	assert.Nil(t, resource.PriceTypeLabel)
}
