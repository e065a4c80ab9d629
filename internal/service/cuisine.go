package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/cache"
	"github.com/pageza/recipeshare/backend/internal/models"
)

const cuisinesCacheKey = "cuisines:all"

// CuisineService handles cuisine tags
type CuisineService struct {
	db    *gorm.DB
	cache cache.Cache
}

// NewCuisineService creates a new CuisineService instance. listCache may be nil.
func NewCuisineService(db *gorm.DB, listCache cache.Cache) *CuisineService {
	return &CuisineService{db: db, cache: listCache}
}

// CuisineRecipes is the listing of recipes tagged with one cuisine
type CuisineRecipes struct {
	CuisineName string          `json:"cuisineName"`
	Count       int             `json:"count"`
	Recipes     []models.Recipe `json:"recipes"`
}

// GetOrCreate returns the cuisine whose name matches case-insensitively,
// creating it when none exists. created is true only for a new record. A
// concurrent creator that wins the unique index is resolved by looking the
// winner up again.
func (s *CuisineService) GetOrCreate(ctx context.Context, name string) (*models.Cuisine, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperrors.Validation("Cuisine name is required")
	}

	existing, err := s.findByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	cuisine := &models.Cuisine{Name: name}
	err = s.db.WithContext(ctx).Create(cuisine).Error
	if apperrors.IsDuplicateKey(err) {
		log.Printf("[CuisineService] Lost create race for %q, retrying as lookup", name)
		existing, lookupErr := s.findByName(ctx, name)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		if existing == nil {
			return nil, false, apperrors.Internal(err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, cuisinesCacheKey)
	}
	return cuisine, true, nil
}

// findByName returns nil without error when no cuisine matches
func (s *CuisineService) findByName(ctx context.Context, name string) (*models.Cuisine, error) {
	var cuisine models.Cuisine
	err := s.db.WithContext(ctx).Where("name_key = ?", models.CuisineKey(name)).First(&cuisine).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &cuisine, nil
}

// ListCuisines returns all cuisines ordered by name
func (s *CuisineService) ListCuisines(ctx context.Context) ([]models.Cuisine, error) {
	var cuisines []models.Cuisine
	if s.cache != nil {
		if found, err := s.cache.GetJSON(ctx, cuisinesCacheKey, &cuisines); err == nil && found {
			return cuisines, nil
		}
	}

	if err := s.db.WithContext(ctx).Order("name ASC").Find(&cuisines).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cuisinesCacheKey, cuisines, listCacheTTL)
	}
	return cuisines, nil
}

// Resolve finds a cuisine by id when ref looks like one, falling back to a
// case-insensitive name match.
func (s *CuisineService) Resolve(ctx context.Context, ref string) (*models.Cuisine, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperrors.Validation("Cuisine is required")
	}

	if models.IsValidID(ref) {
		var cuisine models.Cuisine
		err := s.db.WithContext(ctx).First(&cuisine, "id = ?", ref).Error
		if err == nil {
			return &cuisine, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal(err)
		}
	}

	cuisine, err := s.findByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if cuisine == nil {
		return nil, apperrors.NotFound("Cuisine not found")
	}
	return cuisine, nil
}

// RecipesByCuisine lists the recipes tagged with the cuisine ref names that
// viewerID may see, joined to their category.
func (s *CuisineService) RecipesByCuisine(ctx context.Context, ref, viewerID string) (*CuisineRecipes, error) {
	cuisine, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err = visibleTo(s.db.WithContext(ctx), viewerID).
		Preload("Category").
		Where("cuisine_id = ?", cuisine.ID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &CuisineRecipes{
		CuisineName: cuisine.Name,
		Count:       len(recipes),
		Recipes:     recipes,
	}, nil
}
