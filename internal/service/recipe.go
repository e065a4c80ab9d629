package service

import (
	"context"
	"errors"
	"log"
	"math"
	"mime/multipart"
	"net/url"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const (
	recipeNotFound = "Recipe not found"
	notRecipeOwner = "You can only modify your own recipes"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

var recipeOrders = map[string]string{
	"newest":    "created_at DESC, id DESC",
	"oldest":    "created_at ASC, id ASC",
	"title":     "title ASC, id ASC",
	"-title":    "title DESC, id DESC",
	"prepTime":  "prep_time ASC, id ASC",
	"-prepTime": "prep_time DESC, id DESC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RecipeService handles recipe operations
type RecipeService struct {
	db         *gorm.DB
	media      *MediaService
	categories *CategoryService
	cuisines   *CuisineService
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, media *MediaService, categories *CategoryService, cuisines *CuisineService) *RecipeService {
	return &RecipeService{db: db, media: media, categories: categories, cuisines: cuisines}
}

// requireAuthor rejects callers whose account no longer exists. Tokens
// outlive account deletion, so the claims alone cannot vouch for the user.
func (s *RecipeService) requireAuthor(ctx context.Context, callerID string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", callerID).Count(&count).Error; err != nil {
		return apperrors.Internal(err)
	}
	if count == 0 {
		return apperrors.Auth("Invalid or expired token")
	}
	return nil
}

// visibleTo limits a recipe query to public recipes plus those owned by viewerID
func visibleTo(db *gorm.DB, viewerID string) *gorm.DB {
	if viewerID == "" {
		return db.Where("is_public = ?", true)
	}
	return db.Where("(is_public = ? OR user_id = ?)", true, viewerID)
}

func joined(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Category").Preload("Cuisine")
}

// recipeFields is a validated RecipeInput, ready to be written
type recipeFields struct {
	updates    map[string]interface{}
	cuisineRef *string
}

// validate checks every set field of in. Nothing is written here, so a
// rejected request leaves storage untouched.
func (s *RecipeService) validate(ctx context.Context, in types.RecipeInput, callerID string, image *multipart.FileHeader) (*recipeFields, error) {
	if in.User.Set && in.User.Trimmed() != "" && in.User.Trimmed() != callerID {
		return nil, apperrors.Forbidden("Recipes can only be authored as yourself")
	}

	f := &recipeFields{updates: map[string]interface{}{}}

	if in.Title.Set {
		if in.Title.Trimmed() == "" {
			return nil, apperrors.Validation("Title cannot be empty")
		}
		f.updates["title"] = in.Title.Trimmed()
	}
	if in.Description.Set {
		f.updates["description"] = in.Description.Trimmed()
	}

	if in.Category.Set {
		categoryID := in.Category.Trimmed()
		if _, err := s.categories.GetCategory(ctx, categoryID); err != nil {
			if apperrors.Is(err, apperrors.KindNotFound) {
				return nil, apperrors.Validation("Category does not exist")
			}
			return nil, err
		}
		f.updates["category_id"] = categoryID
	}

	lists := []struct {
		column string
		field  string
		list   types.StringList
	}{
		{"ingredients", "ingredients", in.Ingredients},
		{"instructions", "instructions", in.Instructions},
		{"tags", "tags", in.Tags},
	}
	for _, l := range lists {
		if !l.list.IsSet() {
			continue
		}
		items, err := l.list.Decode(l.field)
		if err != nil {
			return nil, err
		}
		f.updates[l.column] = models.StringArray(items)
	}

	if in.PrepTime.Set && in.PrepTime.Trimmed() != "" {
		prepTime, err := in.PrepTime.Float()
		if err != nil || math.IsNaN(prepTime) || math.IsInf(prepTime, 0) || prepTime < 0 {
			return nil, apperrors.Validation("prepTime must be a non-negative number")
		}
		f.updates["prep_time"] = prepTime
	}

	if in.IsPublic.Set && in.IsPublic.Trimmed() != "" {
		isPublic, err := in.IsPublic.Bool()
		if err != nil {
			return nil, apperrors.Validation("isPublic must be a boolean")
		}
		f.updates["is_public"] = isPublic
	}

	if image == nil && in.ImageURL.Set {
		imageURL := in.ImageURL.Trimmed()
		if imageURL != "" {
			if err := s.checkImageURL(imageURL); err != nil {
				return nil, err
			}
		}
		f.updates["image_url"] = imageURL
	}

	if in.Cuisine.Set {
		ref := in.Cuisine.Trimmed()
		f.cuisineRef = &ref
	}
	return f, nil
}

func (s *RecipeService) checkImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !s.media.RecipePolicy().AllowsExtension(u.Path) {
		return apperrors.Validation("Image URL must point to a jpg, jpeg or png file")
	}
	return nil
}

// resolveCuisine turns a client cuisine reference into a cuisine id. An
// id-shaped ref must exist, anything else is a name that is looked up or
// created. An empty ref clears the cuisine.
func (s *RecipeService) resolveCuisine(ctx context.Context, ref string) (*string, error) {
	if ref == "" {
		return nil, nil
	}
	if models.IsValidID(ref) {
		var cuisine models.Cuisine
		err := s.db.WithContext(ctx).First(&cuisine, "id = ?", ref).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Validation("Cuisine does not exist")
		}
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		return &cuisine.ID, nil
	}
	cuisine, _, err := s.cuisines.GetOrCreate(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &cuisine.ID, nil
}

// discardUpload removes the image apply stored when the row write that
// should have referenced it failed
func (s *RecipeService) discardUpload(ctx context.Context, f *recipeFields, image *multipart.FileHeader) {
	if image == nil {
		return
	}
	if imageURL, ok := f.updates["image_url"].(string); ok {
		s.media.Discard(ctx, imageURL)
	}
}

// apply performs the writes validate deferred: cuisine resolution and image upload
func (s *RecipeService) apply(ctx context.Context, f *recipeFields, image *multipart.FileHeader) error {
	if f.cuisineRef != nil {
		cuisineID, err := s.resolveCuisine(ctx, *f.cuisineRef)
		if err != nil {
			return err
		}
		f.updates["cuisine_id"] = cuisineID
	}
	if image != nil {
		imageURL, err := s.media.Ingest(ctx, image, s.media.RecipePolicy())
		if err != nil {
			return err
		}
		f.updates["image_url"] = imageURL
	}
	return nil
}

// CreateRecipe stores a recipe authored by callerID and returns its joined view
func (s *RecipeService) CreateRecipe(ctx context.Context, callerID string, in types.RecipeInput, image *multipart.FileHeader) (*models.Recipe, error) {
	if in.Title.Trimmed() == "" || in.Category.Trimmed() == "" {
		return nil, apperrors.Validation("Title and category are required")
	}
	if err := s.requireAuthor(ctx, callerID); err != nil {
		return nil, err
	}
	if image != nil {
		if verdict := s.media.RecipePolicy().Screen(image.Filename, image.Size); !verdict.Accepted {
			return nil, apperrors.UnsupportedMedia(verdict.Reason)
		}
	}

	f, err := s.validate(ctx, in, callerID, image)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, f, image); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:       callerID,
		Ingredients:  models.StringArray{},
		Instructions: models.StringArray{},
		Tags:         models.StringArray{},
		IsPublic:     true,
	}
	for column, value := range f.updates {
		switch column {
		case "title":
			recipe.Title = value.(string)
		case "description":
			recipe.Description = value.(string)
		case "category_id":
			recipe.CategoryID = value.(string)
		case "ingredients":
			recipe.Ingredients = value.(models.StringArray)
		case "instructions":
			recipe.Instructions = value.(models.StringArray)
		case "tags":
			recipe.Tags = value.(models.StringArray)
		case "prep_time":
			recipe.PrepTime = value.(float64)
		case "is_public":
			recipe.IsPublic = value.(bool)
		case "image_url":
			recipe.ImageURL = value.(string)
		case "cuisine_id":
			recipe.CuisineID = value.(*string)
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error; err != nil {
		s.discardUpload(ctx, f, image)
		return nil, apperrors.Internal(err)
	}
	log.Printf("[RecipeService] Created recipe %s for user %s", recipe.ID, callerID)
	return s.fetch(ctx, recipe.ID)
}

func (s *RecipeService) fetch(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := joined(s.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, recipeNotFound, "")
	}
	return &recipe, nil
}

// GetRecipe returns the joined view of a recipe viewerID may see. Private
// recipes of other users are reported as missing.
func (s *RecipeService) GetRecipe(ctx context.Context, id, viewerID string) (*models.Recipe, error) {
	if !models.IsValidID(id) {
		return nil, apperrors.NotFound(recipeNotFound)
	}
	recipe, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.VisibleTo(viewerID) {
		return nil, apperrors.NotFound(recipeNotFound)
	}
	return recipe, nil
}

// owned loads a recipe and checks callerID authored it
func (s *RecipeService) owned(ctx context.Context, id, callerID string) (*models.Recipe, error) {
	if err := s.requireAuthor(ctx, callerID); err != nil {
		return nil, err
	}
	if !models.IsValidID(id) {
		return nil, apperrors.NotFound(recipeNotFound)
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, apperrors.FromDB(err, recipeNotFound, "")
	}
	if !recipe.OwnedBy(callerID) {
		return nil, apperrors.Forbidden(notRecipeOwner)
	}
	return &recipe, nil
}

// UpdateRecipe merges the set fields of in into a recipe owned by callerID
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, callerID string, in types.RecipeInput, image *multipart.FileHeader) (*models.Recipe, error) {
	if _, err := s.owned(ctx, id, callerID); err != nil {
		return nil, err
	}
	if image != nil {
		if verdict := s.media.RecipePolicy().Screen(image.Filename, image.Size); !verdict.Accepted {
			return nil, apperrors.UnsupportedMedia(verdict.Reason)
		}
	}

	f, err := s.validate(ctx, in, callerID, image)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, f, image); err != nil {
		return nil, err
	}

	if len(f.updates) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Updates(f.updates).Error
		if err != nil {
			s.discardUpload(ctx, f, image)
			return nil, apperrors.Internal(err)
		}
	}
	return s.fetch(ctx, id)
}

// DeleteRecipe removes a recipe owned by callerID
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, callerID string) error {
	if _, err := s.owned(ctx, id, callerID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
		return apperrors.Internal(err)
	}
	log.Printf("[RecipeService] Deleted recipe %s", id)
	return nil
}

// NormalizeListQuery applies defaults and bounds to a listing query
func NormalizeListQuery(q types.ListQuery) (types.ListQuery, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Sort == "" {
		q.Sort = "newest"
	}
	if _, ok := recipeOrders[q.Sort]; !ok {
		return q, apperrors.Validation("Invalid sort, expected one of newest, oldest, title, -title, prepTime, -prepTime")
	}
	return q, nil
}

// paginate runs filter twice, once to count and once for the requested page
func (s *RecipeService) paginate(ctx context.Context, q types.ListQuery, filter func(*gorm.DB) *gorm.DB) (*types.RecipePage, error) {
	q, err := NormalizeListQuery(q)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := filter(s.db.WithContext(ctx).Model(&models.Recipe{})).Count(&total).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	totalPages := (total + int64(q.Limit) - 1) / int64(q.Limit)

	// Pages past the end are empty without a query, which also keeps the
	// offset below total.
	recipes := []models.Recipe{}
	if int64(q.Page) <= totalPages {
		err = joined(filter(s.db.WithContext(ctx))).
			Order(recipeOrders[q.Sort]).
			Offset((q.Page - 1) * q.Limit).
			Limit(q.Limit).
			Find(&recipes).Error
		if err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	return &types.RecipePage{
		Recipes:    recipes,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: int(totalPages),
	}, nil
}

// ListRecipes pages through every recipe viewerID may see
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	return s.paginate(ctx, q, func(db *gorm.DB) *gorm.DB {
		return visibleTo(db, viewerID)
	})
}

// ListPublicRecipes pages through public recipes only
func (s *RecipeService) ListPublicRecipes(ctx context.Context, q types.ListQuery) (*types.RecipePage, error) {
	return s.paginate(ctx, q, func(db *gorm.DB) *gorm.DB {
		return visibleTo(db, "")
	})
}

// ListByUser returns all recipes of userID to that user and the public ones to anyone else
func (s *RecipeService) ListByUser(ctx context.Context, userID, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	if !models.IsValidID(userID) {
		return nil, apperrors.Validation("Invalid user id")
	}
	return s.paginate(ctx, q, func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", userID)
		if userID == viewerID {
			return db
		}
		return db.Where("is_public = ?", true)
	})
}

// ListByCategory pages through the visible recipes of a category
func (s *RecipeService) ListByCategory(ctx context.Context, categoryID, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	if !models.IsValidID(categoryID) {
		return nil, apperrors.Validation("Invalid category id")
	}
	return s.paginate(ctx, q, func(db *gorm.DB) *gorm.DB {
		return visibleTo(db.Where("category_id = ?", categoryID), viewerID)
	})
}

// SearchRecipes matches name as a case-insensitive substring of the title
func (s *RecipeService) SearchRecipes(ctx context.Context, name, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("Search name is required")
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
	return s.paginate(ctx, q, func(db *gorm.DB) *gorm.DB {
		return visibleTo(db.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern), viewerID)
	})
}
