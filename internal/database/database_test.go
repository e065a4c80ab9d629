package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func TestRunMigrationsIsRepeatable(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, database.RunMigrations(db))

	for _, model := range database.Models() {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestPostgresDuplicateKeyTranslation(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, database.HealthCheck(ctx, db))

	first := &models.Category{Name: "Desserts", ImageURL: "/uploads/a.png"}
	require.NoError(t, db.Create(first).Error)
	assert.True(t, models.IsValidID(first.ID))

	err := db.Create(&models.Category{Name: "Desserts", ImageURL: "/uploads/b.png"}).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
	assert.True(t, apperrors.IsDuplicateKey(err))

	require.NoError(t, db.Create(&models.Cuisine{Name: "Thai"}).Error)
	err = db.Create(&models.Cuisine{Name: "THAI"}).Error
	assert.True(t, apperrors.IsDuplicateKey(err))
}

func TestPostgresStringArrayRoundTrip(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	user := testhelpers.CreateTestUser(t, db, "ann")
	category := testhelpers.CreateTestCategory(t, db, "Soups")
	recipe := &models.Recipe{
		UserID:       user.ID,
		CategoryID:   category.ID,
		Title:        "Pho",
		Ingredients:  models.StringArray{"broth", "noodles"},
		Instructions: models.StringArray{},
		Tags:         models.StringArray{"vietnamese"},
		IsPublic:     true,
	}
	require.NoError(t, db.Create(recipe).Error)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, models.StringArray{"broth", "noodles"}, stored.Ingredients)
	assert.Empty(t, stored.Instructions)
}
