package mocks

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) recipe(args mock.Arguments) (*models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) page(args mock.Arguments) (*types.RecipePage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipePage), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, callerID string, in types.RecipeInput, image *multipart.FileHeader) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, callerID, in, image))
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id, viewerID string) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id, viewerID))
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id, callerID string, in types.RecipeInput, image *multipart.FileHeader) (*models.Recipe, error) {
	return m.recipe(m.Called(ctx, id, callerID, in, image))
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id, callerID string) error {
	return m.Called(ctx, id, callerID).Error(0)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	return m.page(m.Called(ctx, viewerID, q))
}

// ListPublicRecipes mocks the ListPublicRecipes method
func (m *MockRecipeService) ListPublicRecipes(ctx context.Context, q types.ListQuery) (*types.RecipePage, error) {
	return m.page(m.Called(ctx, q))
}

// ListByUser mocks the ListByUser method
func (m *MockRecipeService) ListByUser(ctx context.Context, userID, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	return m.page(m.Called(ctx, userID, viewerID, q))
}

// ListByCategory mocks the ListByCategory method
func (m *MockRecipeService) ListByCategory(ctx context.Context, categoryID, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	return m.page(m.Called(ctx, categoryID, viewerID, q))
}

// SearchRecipes mocks the SearchRecipes method
func (m *MockRecipeService) SearchRecipes(ctx context.Context, name, viewerID string, q types.ListQuery) (*types.RecipePage, error) {
	return m.page(m.Called(ctx, name, viewerID, q))
}
