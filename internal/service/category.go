package service

import (
	"context"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/cache"
	"github.com/pageza/recipeshare/backend/internal/models"
)

const (
	categoriesCacheKey = "categories:all"
	listCacheTTL       = 10 * time.Minute
)

// CategoryService handles categories
type CategoryService struct {
	db    *gorm.DB
	media *MediaService
	cache cache.Cache
}

// NewCategoryService creates a new CategoryService instance. listCache may be nil.
func NewCategoryService(db *gorm.DB, media *MediaService, listCache cache.Cache) *CategoryService {
	return &CategoryService{db: db, media: media, cache: listCache}
}

// CreateCategory stores a category after pushing its image through the media
// adapter. Duplicate names are rejected by the unique index.
func (s *CategoryService) CreateCategory(ctx context.Context, name string, image *multipart.FileHeader) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || image == nil {
		return nil, apperrors.Validation("Name and image are required")
	}

	imageURL, err := s.media.Ingest(ctx, image, s.media.GenericPolicy())
	if err != nil {
		return nil, err
	}

	category := &models.Category{Name: name, ImageURL: imageURL}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		s.media.Discard(ctx, imageURL)
		return nil, apperrors.FromDB(err, "", "Category already exists")
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, categoriesCacheKey)
	}
	log.Printf("[CategoryService] Created category %s (%s)", category.Name, category.ID)
	return category, nil
}

// ListCategories returns all categories ordered by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if s.cache != nil {
		if found, err := s.cache.GetJSON(ctx, categoriesCacheKey, &categories); err == nil && found {
			return categories, nil
		}
	}

	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, categoriesCacheKey, categories, listCacheTTL)
	}
	return categories, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	if !models.IsValidID(id) {
		return nil, apperrors.Validation("Invalid category id")
	}
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, "Category not found", "")
	}
	return &category, nil
}
