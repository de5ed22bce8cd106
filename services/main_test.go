package services

import (
	"fmt"
	"os"
	"testing"

	"github.com/brewtable/brewtable-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestMain ensures GO_ENV is set to "test" to prevent accidental data loss
func TestMain(m *testing.M) {
	env := os.Getenv("GO_ENV")
	if env != "test" {
		fmt.Fprintf(os.Stderr, "SAFETY CHECK FAILED: tests must run with GO_ENV=test to prevent data loss (current GO_ENV=%q). Run: GO_ENV=test go test ./...\n", env)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupServiceTestDB creates an in-memory database with all models
// migrated. The connection pool is pinned to a single connection: each
// connection to sqlite ":memory:" gets its own database, and the
// concurrency tests rely on every goroutine seeing the same one.
func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.CafeTable{},
		&models.Offer{},
		&models.Order{},
		&models.OrderLine{},
		&models.SequenceCounter{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
