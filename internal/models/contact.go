package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Contact subject constants.
const (
	SubjectGeneral      = "general"
	SubjectService      = "service"
	SubjectConsultation = "consultation"
	SubjectSupport      = "support"
	SubjectPartnership  = "partnership"
	SubjectOther        = "other"
)

// Contact status constants.
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusReplied  = "replied"
	ContactStatusArchived = "archived"
)

// Contact represents a submitted contact-form message. Contacts are created
// by public submission, mutated only through status transitions and hard
// deleted by admins; there is no soft delete.
type Contact struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"not null"`
	Email     string     `json:"email" gorm:"not null;index"`
	Phone     string     `json:"phone"`
	Subject   string     `json:"subject" gorm:"not null;index"`
	Message   string     `json:"message" gorm:"not null"`
	Status    string     `json:"status" gorm:"default:new;index"`
	IPAddress string     `json:"ip_address"`
	UserAgent string     `json:"user_agent"`
	RepliedAt *time.Time `json:"replied_at"`
	RepliedBy *uint      `json:"replied_by"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsNew reports whether the contact has not been viewed yet.
func (c *Contact) IsNew() bool {
	return c.Status == ContactStatusNew
}

// ScopeContactStatus filters by status.
func ScopeContactStatus(status string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// ScopeContactSubject filters by subject.
func ScopeContactSubject(subject string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("subject = ?", subject)
	}
}

// ScopeContactSearch matches a case-insensitive substring against name,
// email and message.
func ScopeContactSearch(term string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(message) LIKE ?",
			pattern, pattern, pattern,
		)
	}
}

// ScopeContactDateRange filters on creation date with inclusive bounds.
// Either bound may be zero.
func ScopeContactDateRange(from, to time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !from.IsZero() {
			db = db.Where("created_at >= ?", from)
		}
		if !to.IsZero() {
			// Inclusive upper bound on the calendar day.
			db = db.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
		return db
	}
}

// ScopeContactUnread keeps contacts still awaiting a reply.
func ScopeContactUnread(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", []string{ContactStatusNew, ContactStatusRead})
}
