package repositories

import (
	"agrosite/internal/models"
)

// Stock update operations.
const (
	StockOpAdd      = "add"
	StockOpSubtract = "subtract"
	StockOpSet      = "set"
)

// ProductListOptions describes filtering, searching, sorting and pagination
// for product listings. Page and PerPage are expected to be sanitized by the
// caller.
type ProductListOptions struct {
	Category string
	Status   string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	InStock  bool
	Sort     string
	Order    string
	Page     int
	PerPage  int
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(opts ProductListOptions) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error

	// UpdateStock applies a stock operation (add, subtract, set) and the
	// resulting status transition atomically, returning the updated product.
	UpdateStock(id uint, quantity int, operation string) (*models.Product, error)
}
