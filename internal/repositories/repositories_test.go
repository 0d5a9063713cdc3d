package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"agrosite/internal/models"
)

// setupDB opens a fresh in-memory SQLite database for one test, migrated
// with all models. Each test gets its own named database so state never
// leaks between tests.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Service{}, &models.Contact{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}
