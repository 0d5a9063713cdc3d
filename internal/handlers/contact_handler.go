package handlers

import (
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"agrosite/internal/apperrors"
	"agrosite/internal/repositories"
	"agrosite/internal/resources"
	"agrosite/internal/services"
)

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=20,phone"`
	Subject string `json:"subject" validate:"required,oneof=general service consultation support partnership other"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// UpdateContactStatusRequest is the payload for the generic status-update
// endpoint.
type UpdateContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}

// ContactHandler handles HTTP requests for contact submissions and triage.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// Accepts international phone formats like "+1 (555) 123-4567".
var phoneFormat = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	v := validator.New()
	v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneFormat.MatchString(fl.Field().String())
	})
	return &ContactHandler{
		service:  service,
		validate: v,
	}
}

// RegisterRoutes registers the contact routes with the Fiber app. Submission
// is public; everything else is an admin operation.
// TODO: add admin authentication middleware to the triage routes.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contactRoutes := router.Group("/contacts")
	contactRoutes.Post("/", h.HandleSubmit)
	contactRoutes.Get("/", h.HandleList)
	contactRoutes.Get("/statistics", h.HandleStatistics)
	contactRoutes.Get("/:id", h.HandleGet)
	contactRoutes.Patch("/:id/status", h.HandleUpdateStatus)
	contactRoutes.Delete("/:id", h.HandleDelete)
}

// HandleSubmit accepts a public contact-form submission and returns the
// masked confirmation payload.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing contact request body: %v", err)
		return respondError(c, apperrors.NewDomainError("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, validationError(err))
	}

	contact, err := h.service.Submit(c.UserContext(), services.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}, services.RequestContext{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, fiber.StatusCreated,
		"Thank you for contacting us. We'll get back to you within 24 hours.",
		resources.NewPublicContactResource(contact))
}

// HandleList returns a filtered, sorted, paginated contact listing.
func (h *ContactHandler) HandleList(c *fiber.Ctx) error {
	page, perPage := parsePagination(c, 20)
	opts := repositories.ContactListOptions{
		Status:  c.Query("status"),
		Subject: c.Query("subject"),
		Search:  c.Query("search"),
		Unread:  c.QueryBool("unread"),
		Sort:    c.Query("sort", "created_at"),
		Order:   c.Query("order", "desc"),
		Page:    page,
		PerPage: perPage,
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			opts.DateFrom = t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			opts.DateTo = t
		}
	}

	contacts, total, err := h.service.List(opts)
	if err != nil {
		log.Printf("Error listing contacts: %v", err)
		return respondError(c, err)
	}
	return respondPage(c, resources.NewContactCollection(contacts), page, perPage, total)
}

// HandleGet returns a single contact, transitioning it from new to read on
// first view.
func (h *ContactHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "contact")
	if err != nil {
		return respondError(c, err)
	}
	contact, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	if contact.IsNew() {
		contact, err = h.service.MarkAsRead(contact)
		if err != nil {
			return respondError(c, err)
		}
	}
	return respondData(c, fiber.StatusOK, resources.NewContactResource(contact))
}

// HandleUpdateStatus applies the generic status update. Replied and archived
// go through their guarded transitions; other statuses are assigned
// directly.
func (h *ContactHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "contact")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateContactStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update request body: %v", err)
		return respondError(c, apperrors.NewDomainError("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, validationError(err))
	}

	// No authentication yet, so there is no admin identity to stamp on
	// replied transitions.
	contact, err := h.service.UpdateStatus(id, req.Status, nil)
	if err != nil {
		log.Printf("Error updating status for contact %d: %v", id, err)
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Contact status updated successfully.",
		resources.NewContactResource(contact))
}

// HandleDelete removes a contact permanently.
func (h *ContactHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "contact")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Contact deleted successfully.", nil)
}

// HandleStatistics returns aggregate contact counts.
func (h *ContactHandler) HandleStatistics(c *fiber.Ctx) error {
	stats, err := h.service.Statistics()
	if err != nil {
		log.Printf("Error aggregating contact statistics: %v", err)
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, stats)
}
