package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// Models lists every persisted type in migration order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Cuisine{},
		&models.Recipe{},
	}
}

// RunMigrations brings the schema up to date, including the unique indexes
// on users.email, categories.name and cuisines.name_key.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running auto-migration for %s", db.Dialector.Name())
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
