package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product category constants.
const (
	CategorySeeds       = "seeds"
	CategoryFertilizers = "fertilizers"
	CategoryEquipment   = "equipment"
	CategoryTools       = "tools"
)

// Product status constants.
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out_of_stock"
)

// Product represents a catalog product.
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"not null;index"`
	Description   string         `json:"description"`
	Category      string         `json:"category" gorm:"not null;index"`
	Price         float64        `json:"price" gorm:"not null"`
	Currency      string         `json:"currency" gorm:"size:3;default:USD"`
	ImageURL      string         `json:"image_url"`
	StockQuantity int            `json:"stock_quantity" gorm:"default:0"`
	Status        string         `json:"status" gorm:"default:active;index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeSave clamps the price to a non-negative value and upper-cases the
// currency code before any write, mirroring the original write-time mutators.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Price < 0 {
		p.Price = 0
	}
	p.Currency = strings.ToUpper(p.Currency)
	return nil
}

// IsInStock reports whether the product can currently be sold.
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0 && p.Status != ProductStatusOutOfStock
}

// IsActive reports whether the product is active.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// ScopeProductCategory filters by category.
func ScopeProductCategory(category string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	}
}

// ScopeProductStatus filters by status.
func ScopeProductStatus(status string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// ScopeProductPriceRange filters by an inclusive price range. Either bound
// may be nil.
func ScopeProductPriceRange(min, max *float64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if min != nil {
			db = db.Where("price >= ?", *min)
		}
		if max != nil {
			db = db.Where("price <= ?", *max)
		}
		return db
	}
}

// ScopeProductSearch matches a case-insensitive substring against name and
// description.
func ScopeProductSearch(term string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
}

// ScopeProductInStock keeps products that are sellable.
func ScopeProductInStock(db *gorm.DB) *gorm.DB {
	return db.Where("stock_quantity > 0 AND status <> ?", ProductStatusOutOfStock)
}
