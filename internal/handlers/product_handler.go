package handlers

import (
	"log"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"agrosite/internal/apperrors"
	"agrosite/internal/repositories"
	"agrosite/internal/resources"
	"agrosite/internal/services"
)

// ProductRequest is the payload for product create/update. Accepted as JSON
// or as multipart form fields alongside an optional "image" file.
type ProductRequest struct {
	Name          string  `json:"name" form:"name" validate:"required,max=255"`
	Description   string  `json:"description" form:"description" validate:"omitempty,max=5000"`
	Category      string  `json:"category" form:"category" validate:"required,oneof=seeds fertilizers equipment tools"`
	Price         float64 `json:"price" form:"price" validate:"required,gt=0,lte=999999.99"`
	Currency      string  `json:"currency" form:"currency" validate:"omitempty,len=3"`
	ImageURL      string  `json:"image_url" form:"image_url" validate:"omitempty,url,max=500"`
	StockQuantity *int    `json:"stock_quantity" form:"stock_quantity" validate:"omitempty,gte=0"`
	Status        string  `json:"status" form:"status" validate:"omitempty,oneof=active inactive out_of_stock"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service        *services.ProductService
	validate       *validator.Validate
	storageBaseURL string
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, storageBaseURL string) *ProductHandler {
	return &ProductHandler{
		service:        service,
		validate:       validator.New(),
		storageBaseURL: storageBaseURL,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. Write
// routes are admin operations.
// TODO: add admin authentication middleware to the write routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Get("/:id", h.HandleGet)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns a filtered, sorted, paginated product listing.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page, perPage := parsePagination(c, 15)
	opts := repositories.ProductListOptions{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		InStock:  c.QueryBool("in_stock"),
		Sort:     c.Query("sort", "created_at"),
		Order:    c.Query("order", "desc"),
		Page:     page,
		PerPage:  perPage,
	}
	if min := c.Query("min_price"); min != "" {
		if v := c.QueryFloat("min_price"); v >= 0 {
			opts.MinPrice = &v
		}
	}
	if max := c.Query("max_price"); max != "" {
		if v := c.QueryFloat("max_price"); v >= 0 {
			opts.MaxPrice = &v
		}
	}

	products, total, err := h.service.List(opts)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err)
	}
	return respondPage(c, resources.NewProductCollection(products, h.storageBaseURL), page, perPage, total)
}

// HandleGet returns a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, resources.NewProductResource(product, h.storageBaseURL))
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	input, image, err := h.parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.Create(input, image)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusCreated, "Product created successfully.",
		resources.NewProductResource(product, h.storageBaseURL))
}

// HandleUpdate updates an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return respondError(c, err)
	}
	input, image, err := h.parseRequest(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.Update(id, input, image)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Product updated successfully.",
		resources.NewProductResource(product, h.storageBaseURL))
}

// HandleDelete soft deletes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, fiber.StatusOK, "Product deleted successfully.", nil)
}

// parseRequest binds and validates the product payload, plus the optional
// uploaded image file.
func (h *ProductHandler) parseRequest(c *fiber.Ctx) (services.ProductInput, *multipart.FileHeader, error) {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return services.ProductInput{}, nil, apperrors.NewDomainError("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return services.ProductInput{}, nil, validationError(err)
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	return services.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Currency:      req.Currency,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		Status:        req.Status,
	}, image, nil
}
