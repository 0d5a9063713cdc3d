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

const serviceImageDir = "services"

// ServiceInput is the validated payload for service create/update calls.
type ServiceInput struct {
	ServiceID     string
	Name          string
	Description   string
	Category      string
	Icon          string
	Price         *float64
	PriceType     string
	ActiveClients *int
	Status        string
	ImageURL      string
}

// ServiceService handles business logic related to offered services.
type ServiceService struct {
	repo   repositories.ServiceRepository
	images storage.Store
}

// NewServiceService creates a new ServiceService.
func NewServiceService(repo repositories.ServiceRepository, images storage.Store) *ServiceService {
	return &ServiceService{
		repo:   repo,
		images: images,
	}
}

// List retrieves services matching the given options.
func (s *ServiceService) List(opts repositories.ServiceListOptions) ([]models.Service, int64, error) {
	return s.repo.List(opts)
}

// Get retrieves a single service by its ID.
func (s *ServiceService) Get(id uint) (*models.Service, error) {
	return s.repo.GetByID(id)
}

// Create creates a new service. When no service_id is supplied the
// repository generates the next sequential one.
func (s *ServiceService) Create(input ServiceInput, image *multipart.FileHeader) (*models.Service, error) {
	service := &models.Service{
		ServiceID:   input.ServiceID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Icon:        input.Icon,
		Price:       input.Price,
		PriceType:   input.PriceType,
		Status:      input.Status,
		ImageURL:    input.ImageURL,
	}
	if service.Status == "" {
		service.Status = models.ServiceStatusActive
	}
	if input.ActiveClients != nil {
		service.ActiveClients = *input.ActiveClients
	}

	if image != nil {
		filename, err := s.uploadImage(image)
		if err != nil {
			return nil, err
		}
		service.ImageURL = filename
	}

	if err := s.repo.Create(service); err != nil {
		return nil, err
	}
	return service, nil
}

// Update applies the input to an existing service. A newly uploaded image
// replaces the stored file; the previous file is deleted first.
func (s *ServiceService) Update(id uint, input ServiceInput, image *multipart.FileHeader) (*models.Service, error) {
	service, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.ServiceID != "" {
		service.ServiceID = input.ServiceID
	}
	service.Name = input.Name
	service.Description = input.Description
	service.Category = input.Category
	service.Icon = input.Icon
	service.Price = input.Price
	service.PriceType = input.PriceType
	if input.Status != "" {
		service.Status = input.Status
	}
	if input.ActiveClients != nil {
		service.ActiveClients = *input.ActiveClients
	}
	if input.ImageURL != "" {
		service.ImageURL = input.ImageURL
	}

	if image != nil {
		if service.ImageURL != "" {
			if err := s.deleteImage(service.ImageURL); err != nil {
				return nil, err
			}
		}
		filename, err := s.uploadImage(image)
		if err != nil {
			return nil, err
		}
		service.ImageURL = filename
	}

	if err := s.repo.Update(service); err != nil {
		return nil, err
	}
	return service, nil
}

// Delete soft deletes a service.
func (s *ServiceService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// UpdateActiveClients assigns the absolute active-clients count.
func (s *ServiceService) UpdateActiveClients(id uint, count int) (*models.Service, error) {
	return s.repo.UpdateActiveClients(id, count)
}

func (s *ServiceService) uploadImage(file *multipart.FileHeader) (string, error) {
	if s.images == nil {
		return "", apperrors.NewDomainError("image storage is not configured")
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.images.Save(serviceImageDir, storage.GenerateFilename(file.Filename), src)
}

func (s *ServiceService) deleteImage(imageURL string) error {
	if s.images == nil {
		return nil
	}
	if u, err := url.Parse(imageURL); err == nil && u.Scheme != "" {
		imageURL = path.Base(u.Path)
	}
	return s.images.Delete(serviceImageDir, imageURL)
}
