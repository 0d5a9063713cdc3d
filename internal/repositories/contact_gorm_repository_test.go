package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"agrosite/internal/apperrors"
	"agrosite/internal/models"
	"agrosite/internal/repositories"
)

func seedContact(t *testing.T, db *gorm.DB, contact models.Contact) models.Contact {
	t.Helper()
	if contact.Status == "" {
		contact.Status = models.ContactStatusNew
	}
	assert.NoError(t, db.Create(&contact).Error)
	return contact
}

func TestGORMContactRepository_DateRangeBoundsAreInclusive(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMContactRepository(db)

	day := func(value string) time.Time {
		parsed, err := time.Parse(time.RFC3339, value)
		assert.NoError(t, err)
		return parsed
	}

	seedContact(t, db, models.Contact{Name: "Early", Email: "early@example.com", Subject: "general", Message: "m", CreatedAt: day("2025-11-09T10:00:00Z")})
	inside := seedContact(t, db, models.Contact{Name: "Inside", Email: "inside@example.com", Subject: "general", Message: "m", CreatedAt: day("2025-11-12T10:00:00Z")})
	lastDay := seedContact(t, db, models.Contact{Name: "LastDay", Email: "last@example.com", Subject: "general", Message: "m", CreatedAt: day("2025-11-15T23:59:00Z")})
	seedContact(t, db, models.Contact{Name: "After", Email: "after@example.com", Subject: "general", Message: "m", CreatedAt: day("2025-11-16T00:00:00Z")})

	from := day("2025-11-10T00:00:00Z")
	to := day("2025-11-15T00:00:00Z")

	contacts, total, err := repo.List(repositories.ContactListOptions{DateFrom: from, DateTo: to, Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	names := []string{contacts[0].Name, contacts[1].Name}
	assert.Contains(t, names, inside.Name)
	assert.Contains(t, names, lastDay.Name, "contacts on the end date itself are included")

	// Open-ended bounds.
	_, total, err = repo.List(repositories.ContactListOptions{DateFrom: from, Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, total, err = repo.List(repositories.ContactListOptions{DateTo: to, Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestGORMContactRepository_CountRecentByEmail(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMContactRepository(db)

	now := time.Now()
	email := "repeat@example.com"

	seedContact(t, db, models.Contact{Name: "R1", Email: email, Subject: "general", Message: "m", CreatedAt: now.Add(-10 * time.Minute)})
	seedContact(t, db, models.Contact{Name: "R2", Email: email, Subject: "general", Message: "m", CreatedAt: now.Add(-30 * time.Minute)})
	seedContact(t, db, models.Contact{Name: "Old", Email: email, Subject: "general", Message: "m", CreatedAt: now.Add(-2 * time.Hour)})
	seedContact(t, db, models.Contact{Name: "Other", Email: "other@example.com", Subject: "general", Message: "m", CreatedAt: now.Add(-5 * time.Minute)})

	count, err := repo.CountRecentByEmail(email, now.Add(-time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGORMContactRepository_Statistics(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMContactRepository(db)

	// Wednesday; the week starts Monday Nov 17.
	now := time.Date(2025, time.November, 19, 15, 0, 0, 0, time.UTC)

	seedContact(t, db, models.Contact{Name: "Today", Email: "a@example.com", Subject: "general", Message: "m", Status: models.ContactStatusNew, CreatedAt: now.Add(-6 * time.Hour)})
	seedContact(t, db, models.Contact{Name: "Tuesday", Email: "b@example.com", Subject: "general", Message: "m", Status: models.ContactStatusRead, CreatedAt: time.Date(2025, time.November, 18, 8, 0, 0, 0, time.UTC)})
	seedContact(t, db, models.Contact{Name: "Sunday", Email: "c@example.com", Subject: "general", Message: "m", Status: models.ContactStatusReplied, CreatedAt: time.Date(2025, time.November, 16, 12, 0, 0, 0, time.UTC)})
	seedContact(t, db, models.Contact{Name: "October", Email: "d@example.com", Subject: "general", Message: "m", Status: models.ContactStatusArchived, CreatedAt: time.Date(2025, time.October, 30, 12, 0, 0, 0, time.UTC)})

	stats, err := repo.Statistics(now)
	assert.NoError(t, err)

	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.New)
	assert.Equal(t, int64(1), stats.Read)
	assert.Equal(t, int64(1), stats.Replied)
	assert.Equal(t, int64(1), stats.Archived)

	assert.Equal(t, int64(1), stats.Today)
	assert.Equal(t, int64(2), stats.ThisWeek, "Sunday submission falls in the previous week")
	assert.Equal(t, int64(3), stats.ThisMonth)
}

func TestGORMContactRepository_DeleteIsPermanent(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMContactRepository(db)

	contact := seedContact(t, db, models.Contact{Name: "Gone", Email: "gone@example.com", Subject: "general", Message: "m"})
	assert.NoError(t, repo.Delete(contact.ID))

	var count int64
	assert.NoError(t, db.Unscoped().Model(&models.Contact{}).Where("id = ?", contact.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no soft-delete row should remain")

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, repo.Delete(contact.ID), &notFound)
}

func TestGORMContactRepository_ListFiltersAndSearch(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMContactRepository(db)

	seedContact(t, db, models.Contact{Name: "Alice Farmer", Email: "alice@example.com", Subject: "consultation", Message: "Need help with crop rotation"})
	seedContact(t, db, models.Contact{Name: "Bob Grower", Email: "bob@example.com", Subject: "general", Message: "Opening hours?", Status: models.ContactStatusRead})
	seedContact(t, db, models.Contact{Name: "Carol", Email: "carol@example.com", Subject: "consultation", Message: "Soil testing quote", Status: models.ContactStatusRead})
	seedContact(t, db, models.Contact{Name: "Dan", Email: "dan@example.com", Subject: "general", Message: "Thanks for the reply", Status: models.ContactStatusReplied})

	_, total, err := repo.List(repositories.ContactListOptions{Status: models.ContactStatusRead, Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = repo.List(repositories.ContactListOptions{Subject: "consultation", Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Unread means still awaiting a reply: new and read, not replied.
	_, total, err = repo.List(repositories.ContactListOptions{Unread: true, Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)

	contacts, total, err := repo.List(repositories.ContactListOptions{Search: "CROP", Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Alice Farmer", contacts[0].Name)

	// Allowed sort column ascending.
	contacts, _, err = repo.List(repositories.ContactListOptions{Sort: "name", Order: "asc", Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, "Alice Farmer", contacts[0].Name)
	assert.Equal(t, "Carol", contacts[2].Name)
}
