package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"agrosite/internal/apperrors"
	"agrosite/internal/models"
	"agrosite/internal/repositories"
)

func TestGORMServiceRepository_GeneratesFirstServiceID(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	service := &models.Service{Name: "Soil Analysis", Category: "consulting"}
	assert.NoError(t, repo.Create(service))
	assert.Equal(t, "S001", service.ServiceID)

	next := &models.Service{Name: "Field Survey", Category: "consulting"}
	assert.NoError(t, repo.Create(next))
	assert.Equal(t, "S002", next.ServiceID)
}

func TestGORMServiceRepository_GeneratesNextAfterExistingMax(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	existing := &models.Service{ServiceID: "S007", Name: "Irrigation Audit", Category: "consulting"}
	assert.NoError(t, repo.Create(existing))

	generated := &models.Service{Name: "Pest Control Plan", Category: "consulting"}
	assert.NoError(t, repo.Create(generated))
	assert.Equal(t, "S008", generated.ServiceID)
}

func TestGORMServiceRepository_SoftDeletedRowsStillCountForGeneration(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	retired := &models.Service{ServiceID: "S041", Name: "Legacy Package", Category: "consulting"}
	assert.NoError(t, repo.Create(retired))
	assert.NoError(t, repo.Delete(retired.ID))

	generated := &models.Service{Name: "New Package", Category: "consulting"}
	assert.NoError(t, repo.Create(generated))
	assert.Equal(t, "S042", generated.ServiceID, "soft-deleted ids must not be reused")
}

func TestGORMServiceRepository_ExplicitServiceIDIsKept(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	service := &models.Service{ServiceID: "S123", Name: "Custom Plan", Category: "consulting"}
	assert.NoError(t, repo.Create(service))
	assert.Equal(t, "S123", service.ServiceID)
}

func TestGORMServiceRepository_UpdateActiveClients(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	service := &models.Service{Name: "Greenhouse Setup", Category: "installation"}
	assert.NoError(t, repo.Create(service))

	updated, err := repo.UpdateActiveClients(service.ID, 12)
	assert.NoError(t, err)
	assert.Equal(t, 12, updated.ActiveClients)

	_, err = repo.UpdateActiveClients(9999, 1)
	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGORMServiceRepository_SearchIncludesServiceID(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	a := &models.Service{Name: "Soil Analysis", Category: "consulting"}
	b := &models.Service{Name: "Drone Mapping", Category: "survey"}
	assert.NoError(t, repo.Create(a))
	assert.NoError(t, repo.Create(b))

	services, total, err := repo.List(repositories.ServiceListOptions{Search: "s002", Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Drone Mapping", services[0].Name)
}

func TestGORMServiceRepository_ListFilters(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	assert.NoError(t, repo.Create(&models.Service{Name: "A", Category: "consulting", Status: models.ServiceStatusActive}))
	assert.NoError(t, repo.Create(&models.Service{Name: "B", Category: "consulting", Status: models.ServiceStatusPending}))
	assert.NoError(t, repo.Create(&models.Service{Name: "C", Category: "installation", Status: models.ServiceStatusActive}))

	_, total, err := repo.List(repositories.ServiceListOptions{Category: "consulting", Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	services, total, err := repo.List(repositories.ServiceListOptions{Status: models.ServiceStatusPending, Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "B", services[0].Name)

	// Allowed sort column.
	services, _, err = repo.List(repositories.ServiceListOptions{Sort: "name", Order: "asc", Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, "A", services[0].Name)
}

func TestGORMServiceRepository_NegativePriceClampedOnWrite(t *testing.T) {
	repo := repositories.NewGORMServiceRepository(setupDB(t))

	price := -10.0
	service := &models.Service{Name: "Weed Control", Category: "maintenance", Price: &price, PriceType: models.PriceTypeMonthly}
	assert.NoError(t, repo.Create(service))

	stored, err := repo.GetByID(service.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, stored.Price) {
		assert.Equal(t, float64(0), *stored.Price)
	}
}
