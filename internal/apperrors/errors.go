// Package apperrors defines the error taxonomy surfaced by the HTTP layer:
// validation failures, missing records, rate-limit rejections and generic
// domain errors. Handlers map these to status codes with errors.As.
package apperrors

import "fmt"

// ValidationError carries field-level validation messages. Mapped to 422.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError creates a ValidationError from a field/message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NotFoundError reports a missing record. Mapped to 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given resource and id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// RateLimitedError rejects a request that exceeded its attempt budget.
// Mapped to 429 with a Retry-After header.
type RateLimitedError struct {
	RetryAfter int // seconds until the window resets
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("Too many contact form submissions. Please try again in %d seconds.", e.RetryAfter)
}

// DomainError is a free-text business-rule failure from the service layer.
// Mapped to 400 unless a different code is set.
type DomainError struct {
	Code    int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a DomainError with the default 400 mapping.
func NewDomainError(message string) *DomainError {
	return &DomainError{Code: 400, Message: message}
}
