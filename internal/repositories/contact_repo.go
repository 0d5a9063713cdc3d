package repositories

import (
	"time"

	"agrosite/internal/models"
)

// ContactListOptions describes filtering, searching, sorting and pagination
// for contact listings. DateFrom/DateTo bound the creation date inclusively;
// zero values disable the bound.
type ContactListOptions struct {
	Status   string
	Subject  string
	Search   string
	Unread   bool
	DateFrom time.Time
	DateTo   time.Time
	Sort     string
	Order    string
	Page     int
	PerPage  int
}

// ContactStatistics aggregates contact counts for the admin dashboard.
type ContactStatistics struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Read      int64 `json:"read"`
	Replied   int64 `json:"replied"`
	Archived  int64 `json:"archived"`
	Today     int64 `json:"today"`
	ThisWeek  int64 `json:"this_week"`
	ThisMonth int64 `json:"this_month"`
}

// ContactRepository defines the interface for contact data access.
type ContactRepository interface {
	List(opts ContactListOptions) ([]models.Contact, int64, error)
	GetByID(id uint) (*models.Contact, error)
	Create(contact *models.Contact) error
	Update(contact *models.Contact) error

	// Delete removes the contact permanently.
	Delete(id uint) error

	// CountRecentByEmail counts submissions from the given email address
	// created at or after since.
	CountRecentByEmail(email string, since time.Time) (int64, error)

	// Statistics aggregates counts relative to the given reference time.
	Statistics(now time.Time) (ContactStatistics, error)
}
