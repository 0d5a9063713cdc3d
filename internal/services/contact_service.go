package services

import (
	"context"
	"log"
	"strings"
	"time"

	"agrosite/internal/apperrors"
	"agrosite/internal/models"
	"agrosite/internal/repositories"
	"agrosite/pkg/ratelimit"
)

// MaxAttemptsPerHour is the contact-form submission budget per client IP.
const MaxAttemptsPerHour = 5

const (
	rateLimitKeyPrefix = "contact_form:"
	rateLimitWindow    = time.Hour
)

// Substrings that mark a submission as likely spam: URL fragments and
// marketing phrases. Matched case-insensitively against message and name.
var suspiciousPatterns = []string{
	"http://", "https://", "www.", ".com", ".net", ".org",
	"click here", "buy now", "limited time",
}

// EventPublisher publishes contact-form events to a message broker. A nil
// publisher disables event publishing.
type EventPublisher interface {
	PublishContactSubmitted(event map[string]interface{}) error
}

// ContactSubmission is the validated payload of a public contact-form post.
type ContactSubmission struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// RequestContext carries the client metadata captured with a submission.
type RequestContext struct {
	IP        string
	UserAgent string
}

// ContactService handles the contact-form pipeline and admin triage.
type ContactService struct {
	repo      repositories.ContactRepository
	limiter   ratelimit.Limiter
	publisher EventPublisher
}

// NewContactService creates a new ContactService. publisher may be nil.
func NewContactService(repo repositories.ContactRepository, limiter ratelimit.Limiter, publisher EventPublisher) *ContactService {
	return &ContactService{
		repo:      repo,
		limiter:   limiter,
		publisher: publisher,
	}
}

// Submit runs the submission pipeline: rate check, spam heuristics, persist,
// rate increment. The rate check happens before any side effect; the counter
// is only incremented once the row exists. Spam detections are logged and
// never reject the submission.
func (s *ContactService) Submit(ctx context.Context, data ContactSubmission, reqCtx RequestContext) (*models.Contact, error) {
	key := rateLimitKeyPrefix + reqCtx.IP

	limited, err := s.limiter.TooManyAttempts(ctx, key, MaxAttemptsPerHour)
	if err != nil {
		return nil, err
	}
	if limited {
		retryAfter, err := s.limiter.AvailableIn(ctx, key)
		if err != nil {
			return nil, err
		}
		return nil, &apperrors.RateLimitedError{RetryAfter: int(retryAfter.Seconds())}
	}

	s.detectSpam(data, reqCtx)

	contact := &models.Contact{
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Subject:   data.Subject,
		Message:   data.Message,
		Status:    models.ContactStatusNew,
		IPAddress: reqCtx.IP,
		UserAgent: reqCtx.UserAgent,
	}
	if err := s.repo.Create(contact); err != nil {
		return nil, err
	}

	if err := s.limiter.Hit(ctx, key, rateLimitWindow); err != nil {
		// The submission is already stored; losing one counter tick only
		// loosens the limit, so log and keep going.
		log.Printf("Failed to record rate-limit hit for %s: %v", reqCtx.IP, err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"event":      "contact.submitted",
			"contact_id": contact.ID,
			"subject":    contact.Subject,
			"created_at": contact.CreatedAt.Format(time.RFC3339),
		}
		if err := s.publisher.PublishContactSubmitted(event); err != nil {
			log.Printf("Failed to publish contact.submitted for contact %d: %v", contact.ID, err)
		}
	}

	return contact, nil
}

// detectSpam scans a submission for URL-like substrings, marketing phrases,
// long repeated-character runs and bursts of submissions from the same
// email. Detections are logged only; nothing is blocked or flagged.
func (s *ContactService) detectSpam(data ContactSubmission, reqCtx RequestContext) {
	message := strings.ToLower(data.Message)
	name := strings.ToLower(data.Name)

	for _, pattern := range suspiciousPatterns {
		if strings.Contains(message, pattern) || strings.Contains(name, pattern) {
			log.Printf("Spam pattern %q detected in contact form (ip=%s email=%s)", pattern, reqCtx.IP, data.Email)
		}
	}

	if hasRepeatedRun(message, 6) || hasRepeatedRun(name, 6) {
		log.Printf("Suspicious repeated characters in contact form (ip=%s email=%s)", reqCtx.IP, data.Email)
	}

	recent, err := s.repo.CountRecentByEmail(data.Email, time.Now().Add(-time.Hour))
	if err != nil {
		log.Printf("Failed to count recent submissions for %s: %v", data.Email, err)
		return
	}
	if recent >= 3 {
		log.Printf("Multiple submissions from same email %s in the last hour (count=%d)", data.Email, recent)
	}
}

// hasRepeatedRun reports whether s contains any rune repeated at least n
// times consecutively.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

// List retrieves contacts matching the given options.
func (s *ContactService) List(opts repositories.ContactListOptions) ([]models.Contact, int64, error) {
	return s.repo.List(opts)
}

// Get retrieves a single contact by ID.
func (s *ContactService) Get(id uint) (*models.Contact, error) {
	return s.repo.GetByID(id)
}

// MarkAsRead transitions a new contact to read. Contacts already past new
// are left untouched.
func (s *ContactService) MarkAsRead(contact *models.Contact) (*models.Contact, error) {
	if contact.Status != models.ContactStatusNew {
		return contact, nil
	}
	contact.Status = models.ContactStatusRead
	if err := s.repo.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// MarkAsReplied transitions a contact to replied, stamping replied_at and
// replied_by.
func (s *ContactService) MarkAsReplied(contact *models.Contact, adminID *uint) (*models.Contact, error) {
	now := time.Now()
	contact.Status = models.ContactStatusReplied
	contact.RepliedAt = &now
	contact.RepliedBy = adminID
	if err := s.repo.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Archive transitions a contact to archived.
func (s *ContactService) Archive(contact *models.Contact) (*models.Contact, error) {
	contact.Status = models.ContactStatusArchived
	if err := s.repo.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateStatus applies the generic status update: replied and archived go
// through their guarded transitions, any other value is assigned directly.
func (s *ContactService) UpdateStatus(id uint, status string, adminID *uint) (*models.Contact, error) {
	contact, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.ContactStatusReplied:
		return s.MarkAsReplied(contact, adminID)
	case models.ContactStatusArchived:
		return s.Archive(contact)
	default:
		contact.Status = status
		if err := s.repo.Update(contact); err != nil {
			return nil, err
		}
		return contact, nil
	}
}

// Delete removes a contact permanently.
func (s *ContactService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// Statistics aggregates contact counts for the admin dashboard.
func (s *ContactService) Statistics() (repositories.ContactStatistics, error) {
	return s.repo.Statistics(time.Now())
}
