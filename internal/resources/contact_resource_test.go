package resources_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agrosite/internal/models"
	"agrosite/internal/resources"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"ab.cdef@example.com", "ab*****@example.com"},
		{"john@example.com", "jo**@example.com"},
		{"ab@example.com", "ab@example.com"},
		{"a@example.com", "a@example.com"},
		{"not-an-email", "not-an-email"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resources.MaskEmail(tt.email), "masking %s", tt.email)
	}
}

func TestMessagePreview(t *testing.T) {
	short := "I would like to know more about your seeds."
	assert.Equal(t, short, resources.MessagePreview(short))

	exact := strings.Repeat("x", 100)
	assert.Equal(t, exact, resources.MessagePreview(exact), "no ellipsis at exactly 100 chars")

	long := strings.Repeat("y", 150)
	preview := resources.MessagePreview(long)
	assert.Equal(t, strings.Repeat("y", 100)+"...", preview)
}

func TestNewPublicContactResource(t *testing.T) {
	created := time.Date(2025, 11, 17, 9, 30, 0, 0, time.UTC)
	contact := &models.Contact{
		ID:        7,
		Name:      "Jane Farmer",
		Email:     "jane.farmer@example.com",
		Phone:     "+1 555 0100",
		Subject:   models.SubjectConsultation,
		Message:   strings.Repeat("help ", 30),
		Status:    models.ContactStatusNew,
		IPAddress: "203.0.113.9",
		CreatedAt: created,
	}

	public := resources.NewPublicContactResource(contact)

	assert.Equal(t, uint(7), public.ID)
	assert.Equal(t, "ja*********@example.com", public.Email)
	assert.Equal(t, "Free Consultation", public.SubjectLabel)
	assert.Equal(t, "New", public.StatusLabel)
	assert.True(t, strings.HasSuffix(public.MessagePreview, "..."))
	assert.Len(t, public.MessagePreview, 103)
	assert.Equal(t, "November 17, 2025 at 9:30 AM", public.FormattedCreatedAt)
	assert.Equal(t, "2025-11-17T09:30:00Z", public.CreatedAt)
}

func TestNewContactResource_RepliedMetadata(t *testing.T) {
	replied := time.Date(2025, 11, 18, 14, 5, 0, 0, time.UTC)
	admin := uint(3)
	contact := &models.Contact{
		ID:        9,
		Name:      "Sam Grower",
		Email:     "sam@example.com",
		Subject:   models.SubjectSupport,
		Message:   "The fertilizer spreader arrived damaged.",
		Status:    models.ContactStatusReplied,
		IPAddress: "203.0.113.10",
		UserAgent: "curl/8.0",
		RepliedAt: &replied,
		RepliedBy: &admin,
		CreatedAt: replied.Add(-24 * time.Hour),
	}

	resource := resources.NewContactResource(contact)

	assert.Equal(t, "sam@example.com", resource.Email, "admin payload carries the full email")
	assert.Equal(t, "Technical Support", resource.SubjectLabel)
	assert.Equal(t, "203.0.113.10", resource.IPAddress)
	if assert.NotNil(t, resource.RepliedAt) {
		assert.Equal(t, "2025-11-18T14:05:00Z", *resource.RepliedAt)
	}
	if assert.NotNil(t, resource.FormattedRepliedAt) {
		assert.Equal(t, "November 18, 2025 at 2:05 PM", *resource.FormattedRepliedAt)
	}
	if assert.NotNil(t, resource.RepliedBy) {
		assert.Equal(t, uint(3), *resource.RepliedBy)
	}
}

func TestNewContactResource_UnrepliedHasNilMetadata(t *testing.T) {
	contact := &models.Contact{
		ID:      4,
		Name:    "Ana",
		Email:   "ana@example.com",
		Subject: models.SubjectGeneral,
		Message: "General question about opening hours.",
		Status:  models.ContactStatusRead,
	}

	resource := resources.NewContactResource(contact)

	assert.Nil(t, resource.RepliedAt)
	assert.Nil(t, resource.FormattedRepliedAt)
	assert.Nil(t, resource.RepliedBy)
	assert.Equal(t, "Read", resource.StatusLabel)
}
