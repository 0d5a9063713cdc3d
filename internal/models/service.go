package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Service status constants.
const (
	ServiceStatusActive   = "active"
	ServiceStatusInactive = "inactive"
	ServiceStatusPending  = "pending"
)

// Service price type constants.
const (
	PriceTypeFixed   = "fixed"
	PriceTypeMonthly = "monthly"
	PriceTypeHourly  = "hourly"
	PriceTypePerUnit = "per_unit"
)

// Service represents an offered business service. ServiceID is the
// customer-facing identifier in the form S001, S002, ... and is generated
// at creation time when not supplied.
type Service struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	ServiceID     string         `json:"service_id" gorm:"uniqueIndex;size:20"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description"`
	Category      string         `json:"category" gorm:"not null;index"`
	Icon          string         `json:"icon"`
	Price         *float64       `json:"price"`
	PriceType     string         `json:"price_type"`
	ActiveClients int            `json:"active_clients" gorm:"default:0"`
	Status        string         `json:"status" gorm:"default:active;index"`
	ImageURL      string         `json:"image_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeSave clamps a present price to a non-negative value.
func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.Price != nil && *s.Price < 0 {
		zero := 0.0
		s.Price = &zero
	}
	return nil
}

// IsActive reports whether the service is active.
func (s *Service) IsActive() bool {
	return s.Status == ServiceStatusActive
}

// ScopeServiceCategory filters by category.
func ScopeServiceCategory(category string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	}
}

// ScopeServiceStatus filters by status.
func ScopeServiceStatus(status string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// ScopeServiceSearch matches a case-insensitive substring against name,
// description and service_id.
func ScopeServiceSearch(term string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(service_id) LIKE ?",
			pattern, pattern, pattern,
		)
	}
}
