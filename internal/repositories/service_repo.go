package repositories

import (
	"agrosite/internal/models"
)

// ServiceListOptions describes filtering, searching, sorting and pagination
// for service listings.
type ServiceListOptions struct {
	Category string
	Status   string
	Search   string
	Sort     string
	Order    string
	Page     int
	PerPage  int
}

// ServiceRepository defines the interface for service data access.
type ServiceRepository interface {
	List(opts ServiceListOptions) ([]models.Service, int64, error)
	GetByID(id uint) (*models.Service, error)

	// Create inserts a service, generating the next sequential service_id
	// when the field is blank.
	Create(service *models.Service) error
	Update(service *models.Service) error
	Delete(id uint) error

	// UpdateActiveClients assigns the absolute active-clients count and
	// returns the updated service.
	UpdateActiveClients(id uint, count int) (*models.Service, error)
}
