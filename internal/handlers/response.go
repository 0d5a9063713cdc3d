package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"agrosite/internal/apperrors"
)

// MaxPerPage caps the page size of every list endpoint.
const MaxPerPage = 100

// paginationMeta describes a page of a list response.
type paginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// respondData writes a success envelope with data.
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// respondMessage writes a success envelope with a message and optional data.
func respondMessage(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// respondPage writes a paginated collection envelope.
func respondPage(c *fiber.Ctx, data interface{}, page, perPage int, total int64) error {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"meta": paginationMeta{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    lastPage,
		},
	})
}

// respondError maps a service or repository error onto the HTTP error
// contract: 422 for validation, 404 for missing records, 429 with
// Retry-After for rate limits, the carried code (default 400) for domain
// errors and 500 for anything unexpected.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  validationErr.Fields,
		})
	}

	var notFoundErr *apperrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": notFoundErr.Error(),
		})
	}

	var rateLimitedErr *apperrors.RateLimitedError
	if errors.As(err, &rateLimitedErr) {
		c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", rateLimitedErr.RetryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success": false,
			"message": rateLimitedErr.Error(),
		})
	}

	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		status := domainErr.Code
		if status == 0 {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": domainErr.Message,
		})
	}

	log.Printf("Unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
	})
}

// validationError converts validator output into the field-level
// ValidationError surfaced as 422.
func validationError(err error) error {
	fields := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return apperrors.NewValidationError(fields)
}

// parsePagination reads page/per_page query parameters, clamping per_page to
// MaxPerPage.
func parsePagination(c *fiber.Ctx, defaultPerPage int) (page, perPage int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage = c.QueryInt("per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// parseID reads the numeric id path parameter, returning a NotFoundError for
// non-numeric values so malformed ids and missing rows look the same.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, apperrors.NewNotFoundError(resource, c.Params("id"))
	}
	return uint(id), nil
}
