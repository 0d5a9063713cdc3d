package services

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"path"

	"agrosite/internal/apperrors"
	"agrosite/internal/models"
	"agrosite/internal/repositories"
	"agrosite/pkg/storage"
)

const productImageDir = "products"

// ProductInput is the validated payload for product create/update calls.
// Optional fields left at their zero value keep the stored value on update.
type ProductInput struct {
	Name          string
	Description   string
	Category      string
	Price         float64
	Currency      string
	ImageURL      string
	StockQuantity *int
	Status        string
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	images storage.Store
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, images storage.Store) *ProductService {
	return &ProductService{
		repo:   repo,
		images: images,
	}
}

// List retrieves products matching the given options.
func (s *ProductService) List(opts repositories.ProductListOptions) ([]models.Product, int64, error) {
	return s.repo.List(opts)
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create creates a new product, storing an uploaded image when present.
func (s *ProductService) Create(input ProductInput, image *multipart.FileHeader) (*models.Product, error) {
	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Currency:    input.Currency,
		ImageURL:    input.ImageURL,
		Status:      input.Status,
	}
	if product.Currency == "" {
		product.Currency = "USD"
	}
	if product.Status == "" {
		product.Status = models.ProductStatusActive
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}

	if image != nil {
		filename, err := s.uploadImage(image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = filename
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies the input to an existing product. A newly uploaded image
// replaces the stored file; the previous file is deleted first.
func (s *ProductService) Update(id uint, input ProductInput, image *multipart.FileHeader) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Category = input.Category
	product.Price = input.Price
	if input.Currency != "" {
		product.Currency = input.Currency
	}
	if input.Status != "" {
		product.Status = input.Status
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if image != nil {
		if product.ImageURL != "" {
			if err := s.deleteImage(product.ImageURL); err != nil {
				return nil, err
			}
		}
		filename, err := s.uploadImage(image)
		if err != nil {
			return nil, err
		}
		product.ImageURL = filename
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft deletes a product. The stored image file is retained.
func (s *ProductService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// UpdateStock applies a stock operation. The out_of_stock transition is
// handled by the repository in the same transaction as the quantity change.
func (s *ProductService) UpdateStock(id uint, quantity int, operation string) (*models.Product, error) {
	return s.repo.UpdateStock(id, quantity, operation)
}

// uploadImage stores the uploaded file under the product image directory and
// returns the generated filename. Only the filename is persisted; the public
// URL is computed at serialization time.
func (s *ProductService) uploadImage(file *multipart.FileHeader) (string, error) {
	if s.images == nil {
		return "", apperrors.NewDomainError("image storage is not configured")
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.images.Save(productImageDir, storage.GenerateFilename(file.Filename), src)
}

// deleteImage removes a stored image file. Absolute URLs are reduced to
// their filename first.
func (s *ProductService) deleteImage(imageURL string) error {
	if s.images == nil {
		return nil
	}
	if u, err := url.Parse(imageURL); err == nil && u.Scheme != "" {
		imageURL = path.Base(u.Path)
	}
	return s.images.Delete(productImageDir, imageURL)
}
