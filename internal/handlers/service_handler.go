package handlers

import (
	"log"
	"mime/multipart"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"agrosite/internal/apperrors"
	"agrosite/internal/repositories"
	"agrosite/internal/resources"
	"agrosite/internal/services"
)

// Format of customer-facing service identifiers (S001, S002, ...).
var serviceIDFormat = regexp.MustCompile(`^S\d{3,}$`)

// ServiceRequest is the payload for service create/update. PriceType is
// required whenever Price is present.
type ServiceRequest struct {
	ServiceID     string   `json:"service_id" form:"service_id" validate:"omitempty,max=20,service_id"`
	Name          string   `json:"name" form:"name" validate:"required,max=255"`
	Description   string   `json:"description" form:"description" validate:"omitempty,max=5000"`
	Category      string   `json:"category" form:"category" validate:"required,max=100"`
	Icon          string   `json:"icon" form:"icon" validate:"omitempty,max=50"`
	Price         *float64 `json:"price" form:"price" validate:"omitempty,gte=0,lte=999999.99"`
	PriceType     string   `json:"price_type" form:"price_type" validate:"required_with=Price,omitempty,oneof=fixed monthly hourly per_unit"`
	ActiveClients *int     `json:"active_clients" form:"active_clients" validate:"omitempty,gte=0"`
	Status        string   `json:"status" form:"status" validate:"omitempty,oneof=active inactive pending"`
	ImageURL      string   `json:"image_url" form:"image_url" validate:"omitempty,url,max=500"`
}

// UpdateClientsRequest is the payload for the active-clients endpoint.
type UpdateClientsRequest struct {
	ActiveClients *int `json:"active_clients" validate:"required,gte=0"`
}

// ServiceHandler handles HTTP requests for services.
type ServiceHandler struct {
	service        *services.ServiceService
	validate       *validator.Validate
	storageBaseURL string
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(service *services.ServiceService, storageBaseURL string) *ServiceHandler {
	v := validator.New()
	// service_id values look like S001, S002, ...
	v.RegisterValidation("service_id", func(fl validator.FieldLevel) bool {
		return serviceIDFormat.MatchString(fl.Field().String())
	})
	return &ServiceHandler{
		service:        service,
		validate:       v,
		storageBaseURL: storageBaseURL,
	}
}

// RegisterRoutes registers the service routes with the Fiber app. Write
// routes are admin operations.
// TODO: add admin authentication middleware to the write routes.
func (h *ServiceHandler) RegisterRoutes(router fiber.Router) {
	serviceRoutes := router.Group("/services")
	serviceRoutes.Get("/", h.HandleList)
	serviceRoutes.Get("/:id", h.HandleGet)
	serviceRoutes.Post("/", h.HandleCreate)
	serviceRoutes.Put("/:id", h.HandleUpdate)
	serviceRoutes.Delete("/:id", h.HandleDelete)
	serviceRoutes.Patch("/:id/update-clients", h.HandleUpdateClients)
}

// HandleList returns a filtered, sorted, paginated service listing.
func (h *ServiceHandler) HandleList(c *fiber.Ctx) error {
	page, perPage := parsePagination(c, 15)
	opts := repositories.ServiceListOptions{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort", "created_at"),
		Order:    c.Query("order", "desc"),
		Page:     page,
		PerPage:  perPage,
	}

	list, total, err := h.service.List(opts)
	if err != nil {
		log.Printf("Error listing services: %v", err)
		return respondError(c, err)
	}
	return respondPage(c, resources.NewServiceCollection(list, h.storageBaseURL), page, perPage, total)
}

// HandleGet returns a single service.
func (h *ServiceHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "service")
	if err != nil {
		return respondError(c, err)
	}
	service, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, resources.NewServiceResource(service, h.storageBaseURL))
}

// HandleCreate creates a new service.
func (h *ServiceHandler) HandleCreate(c *fiber.Ctx) error {
	input, image, err := h.parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	service, err := h.service.Create(input, image)
	if err != nil {
		log.Printf("Error creating service: %v", err)
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "Service created successfully.",
		resources.NewServiceResource(service, h.storageBaseURL))
}

// HandleUpdate updates an existing service.
func (h *ServiceHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "service")
	if err != nil {
		return respondError(c, err)
	}
	input, image, err := h.parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	service, err := h.service.Update(id, input, image)
	if err != nil {
		log.Printf("Error updating service %d: %v", id, err)
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Service updated successfully.",
		resources.NewServiceResource(service, h.storageBaseURL))
}

// HandleDelete soft deletes a service.
func (h *ServiceHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "service")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Service deleted successfully.", nil)
}

// HandleUpdateClients sets the absolute active-clients count.
func (h *ServiceHandler) HandleUpdateClients(c *fiber.Ctx) error {
	id, err := parseID(c, "service")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateClientsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-clients request body: %v", err)
		return respondError(c, apperrors.NewDomainError("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, validationError(err))
	}

	service, err := h.service.UpdateActiveClients(id, *req.ActiveClients)
	if err != nil {
		log.Printf("Error updating active clients for service %d: %v", id, err)
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Active clients updated successfully.",
		resources.NewServiceResource(service, h.storageBaseURL))
}

// parseRequest binds and validates the service payload, plus the optional
// uploaded image file.
func (h *ServiceHandler) parseRequest(c *fiber.Ctx) (services.ServiceInput, *multipart.FileHeader, error) {
	var req ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing service request body: %v", err)
		return services.ServiceInput{}, nil, apperrors.NewDomainError("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return services.ServiceInput{}, nil, validationError(err)
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	return services.ServiceInput{
		ServiceID:     req.ServiceID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Icon:          req.Icon,
		Price:         req.Price,
		PriceType:     req.PriceType,
		ActiveClients: req.ActiveClients,
		Status:        req.Status,
		ImageURL:      req.ImageURL,
	}, image, nil
}
