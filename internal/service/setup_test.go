package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/cache"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

type fixture struct {
	db         *gorm.DB
	auth       *service.AuthService
	media      *service.MediaService
	users      *service.UserService
	categories *service.CategoryService
	cuisines   *service.CuisineService
	recipes    *service.RecipeService
	uploadDir  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)

	dir := t.TempDir()
	store, err := service.NewDiskStore(dir, "/uploads")
	require.NoError(t, err)
	media := service.NewMediaService(store, 1<<20)

	listCache := cache.NewMemory()
	categories := service.NewCategoryService(db, media, listCache)
	cuisines := service.NewCuisineService(db, listCache)
	return &fixture{
		db:         db,
		auth:       testhelpers.NewTestAuthService(db),
		media:      media,
		users:      service.NewUserService(db, media),
		categories: categories,
		cuisines:   cuisines,
		recipes:    service.NewRecipeService(db, media, categories, cuisines),
		uploadDir:  dir,
	}
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake image data")
