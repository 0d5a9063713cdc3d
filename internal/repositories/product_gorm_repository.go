package repositories

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"agrosite/internal/apperrors"
	"agrosite/internal/models"
)

// Columns product listings may sort by. Anything else falls back to
// creation-time descending.
var productSortColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"created_at": true,
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves a page of products matching the given options, along with
// the total match count.
func (r *GORMProductRepository) List(opts ProductListOptions) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if opts.Category != "" {
		query = query.Scopes(models.ScopeProductCategory(opts.Category))
	}
	if opts.Status != "" {
		query = query.Scopes(models.ScopeProductStatus(opts.Status))
	}
	if opts.Search != "" {
		query = query.Scopes(models.ScopeProductSearch(opts.Search))
	}
	if opts.MinPrice != nil || opts.MaxPrice != nil {
		query = query.Scopes(models.ScopeProductPriceRange(opts.MinPrice, opts.MaxPrice))
	}
	if opts.InStock {
		query = query.Scopes(models.ScopeProductInStock)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	err := query.
		Order(orderClause(opts.Sort, opts.Order, productSortColumns)).
		Offset((opts.Page - 1) * opts.PerPage).
		Limit(opts.PerPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product", strconv.Itoa(int(id)))
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("product", strconv.Itoa(int(product.ID)))
	}
	return nil
}

// Delete soft deletes a product by its ID.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("product", strconv.Itoa(int(id)))
	}
	return nil
}

// UpdateStock applies a stock operation in a single transaction so the
// quantity change and the status transition can never be observed apart.
// Subtract and set force out_of_stock at zero or below; set reactivates to
// active only when the product was out_of_stock.
func (r *GORMProductRepository) UpdateStock(id uint, quantity int, operation string) (*models.Product, error) {
	var product models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("product", strconv.Itoa(int(id)))
			}
			return fmt.Errorf("failed to get product %d: %w", id, err)
		}

		switch operation {
		case StockOpAdd:
			product.StockQuantity += quantity
		case StockOpSubtract:
			product.StockQuantity -= quantity
			if product.StockQuantity <= 0 {
				product.Status = models.ProductStatusOutOfStock
			}
		case StockOpSet:
			wasOutOfStock := product.Status == models.ProductStatusOutOfStock
			product.StockQuantity = quantity
			if quantity <= 0 {
				product.Status = models.ProductStatusOutOfStock
			} else if wasOutOfStock {
				product.Status = models.ProductStatusActive
			}
		default:
			return apperrors.NewDomainError(fmt.Sprintf("invalid stock operation: %s", operation))
		}

		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update stock for product %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// orderClause builds an ORDER BY expression from a requested sort column and
// direction, restricted to the given allow-list.
func orderClause(sort, order string, allowed map[string]bool) string {
	if !allowed[sort] {
		return "created_at DESC"
	}
	if order != "asc" {
		order = "desc"
	}
	return sort + " " + order
}
