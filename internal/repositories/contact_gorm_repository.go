package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"agrosite/internal/apperrors"
	"agrosite/internal/models"
)

var contactSortColumns = map[string]bool{
	"name":       true,
	"email":      true,
	"status":     true,
	"created_at": true,
}

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// List retrieves a page of contacts matching the given options, along with
// the total match count.
func (r *GORMContactRepository) List(opts ContactListOptions) ([]models.Contact, int64, error) {
	query := r.db.Model(&models.Contact{})

	if opts.Status != "" {
		query = query.Scopes(models.ScopeContactStatus(opts.Status))
	}
	if opts.Subject != "" {
		query = query.Scopes(models.ScopeContactSubject(opts.Subject))
	}
	if opts.Search != "" {
		query = query.Scopes(models.ScopeContactSearch(opts.Search))
	}
	if opts.Unread {
		query = query.Scopes(models.ScopeContactUnread)
	}
	if !opts.DateFrom.IsZero() || !opts.DateTo.IsZero() {
		query = query.Scopes(models.ScopeContactDateRange(opts.DateFrom, opts.DateTo))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var contacts []models.Contact
	err := query.
		Order(orderClause(opts.Sort, opts.Order, contactSortColumns)).
		Offset((opts.Page - 1) * opts.PerPage).
		Limit(opts.PerPage).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, total, nil
}

// GetByID retrieves a single contact by its ID.
func (r *GORMContactRepository) GetByID(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("contact", strconv.Itoa(int(id)))
		}
		return nil, fmt.Errorf("failed to get contact %d: %w", id, err)
	}
	return &contact, nil
}

// Create inserts a new contact submission.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// Update saves all fields of an existing contact.
func (r *GORMContactRepository) Update(contact *models.Contact) error {
	res := r.db.Save(contact)
	if res.Error != nil {
		return fmt.Errorf("failed to update contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("contact", strconv.Itoa(int(contact.ID)))
	}
	return nil
}

// Delete removes a contact permanently.
func (r *GORMContactRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Contact{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("contact", strconv.Itoa(int(id)))
	}
	return nil
}

// CountRecentByEmail counts submissions from an email address created at or
// after since.
func (r *GORMContactRepository) CountRecentByEmail(email string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Contact{}).
		Where("email = ? AND created_at >= ?", email, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent contacts for %s: %w", email, err)
	}
	return count, nil
}

// Statistics aggregates per-status counts plus today / this-week (Monday
// start) / this-month totals relative to now.
func (r *GORMContactRepository) Statistics(now time.Time) (ContactStatistics, error) {
	var stats ContactStatistics

	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&stats.Total, nil},
		{&stats.New, models.ScopeContactStatus(models.ContactStatusNew)},
		{&stats.Read, models.ScopeContactStatus(models.ContactStatusRead)},
		{&stats.Replied, models.ScopeContactStatus(models.ContactStatusReplied)},
		{&stats.Archived, models.ScopeContactStatus(models.ContactStatusArchived)},
	}
	for _, c := range counts {
		query := r.db.Model(&models.Contact{})
		if c.scope != nil {
			query = query.Scopes(c.scope)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return ContactStatistics{}, fmt.Errorf("failed to aggregate contact counts: %w", err)
		}
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -mondayOffset(now.Weekday()))

	windows := []struct {
		dest  *int64
		since time.Time
	}{
		{&stats.Today, startOfDay},
		{&stats.ThisWeek, startOfWeek},
		{&stats.ThisMonth, startOfMonth},
	}
	for _, w := range windows {
		err := r.db.Model(&models.Contact{}).
			Where("created_at >= ?", w.since).
			Count(w.dest).Error
		if err != nil {
			return ContactStatistics{}, fmt.Errorf("failed to aggregate contact counts: %w", err)
		}
	}

	return stats, nil
}

// mondayOffset returns how many days back the week started.
func mondayOffset(day time.Weekday) int {
	if day == time.Sunday {
		return 6
	}
	return int(day) - 1
}
