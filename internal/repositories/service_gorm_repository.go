package repositories

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"gorm.io/gorm"

	"agrosite/internal/apperrors"
	"agrosite/internal/models"
)

var serviceSortColumns = map[string]bool{
	"name":           true,
	"price":          true,
	"active_clients": true,
	"created_at":     true,
}

var serviceIDPattern = regexp.MustCompile(`^S(\d+)$`)

// GORMServiceRepository is a GORM implementation of ServiceRepository.
type GORMServiceRepository struct {
	db *gorm.DB
}

// NewGORMServiceRepository creates a new instance of GORMServiceRepository.
func NewGORMServiceRepository(db *gorm.DB) *GORMServiceRepository {
	return &GORMServiceRepository{
		db: db,
	}
}

// List retrieves a page of services matching the given options, along with
// the total match count.
func (r *GORMServiceRepository) List(opts ServiceListOptions) ([]models.Service, int64, error) {
	query := r.db.Model(&models.Service{})

	if opts.Category != "" {
		query = query.Scopes(models.ScopeServiceCategory(opts.Category))
	}
	if opts.Status != "" {
		query = query.Scopes(models.ScopeServiceStatus(opts.Status))
	}
	if opts.Search != "" {
		query = query.Scopes(models.ScopeServiceSearch(opts.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	var services []models.Service
	err := query.
		Order(orderClause(opts.Sort, opts.Order, serviceSortColumns)).
		Offset((opts.Page - 1) * opts.PerPage).
		Limit(opts.PerPage).
		Find(&services).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	return services, total, nil
}

// GetByID retrieves a single service by its ID.
func (r *GORMServiceRepository) GetByID(id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("service", strconv.Itoa(int(id)))
		}
		return nil, fmt.Errorf("failed to get service %d: %w", id, err)
	}
	return &service, nil
}

// Create inserts a new service. When service_id is blank the next sequential
// identifier is generated inside the same transaction as the insert; the
// unique index on service_id backstops concurrent creations.
func (r *GORMServiceRepository) Create(service *models.Service) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if service.ServiceID == "" {
			next, err := nextServiceID(tx)
			if err != nil {
				return err
			}
			service.ServiceID = next
		}
		if err := tx.Create(service).Error; err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}
		return nil
	})
	return err
}

// Update saves all fields of an existing service.
func (r *GORMServiceRepository) Update(service *models.Service) error {
	res := r.db.Save(service)
	if res.Error != nil {
		return fmt.Errorf("failed to update service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("service", strconv.Itoa(int(service.ID)))
	}
	return nil
}

// Delete soft deletes a service by its ID.
func (r *GORMServiceRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Service{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("service", strconv.Itoa(int(id)))
	}
	return nil
}

// UpdateActiveClients assigns the absolute active-clients count atomically
// and returns the updated service.
func (r *GORMServiceRepository) UpdateActiveClients(id uint, count int) (*models.Service, error) {
	var service models.Service
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&service, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("service", strconv.Itoa(int(id)))
			}
			return fmt.Errorf("failed to get service %d: %w", id, err)
		}
		service.ActiveClients = count
		if err := tx.Save(&service).Error; err != nil {
			return fmt.Errorf("failed to update active clients for service %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// nextServiceID finds the highest numeric suffix among existing service IDs,
// soft-deleted rows included, and returns the next one zero-padded to three
// digits. The first service ever is S001.
func nextServiceID(tx *gorm.DB) (string, error) {
	var last models.Service
	err := tx.Unscoped().
		Where("service_id LIKE ?", "S%").
		Order("id DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "S001", nil
		}
		return "", fmt.Errorf("failed to look up last service_id: %w", err)
	}

	matches := serviceIDPattern.FindStringSubmatch(last.ServiceID)
	if matches == nil {
		return "S001", nil
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return "", fmt.Errorf("failed to parse service_id %q: %w", last.ServiceID, err)
	}
	return fmt.Sprintf("S%03d", n+1), nil
}
