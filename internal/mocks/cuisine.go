package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// MockCuisineService is a mock implementation of the cuisine service
type MockCuisineService struct {
	mock.Mock
}

func (m *MockCuisineService) GetOrCreate(ctx context.Context, name string) (*models.Cuisine, bool, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Cuisine), args.Bool(1), args.Error(2)
}

func (m *MockCuisineService) ListCuisines(ctx context.Context) ([]models.Cuisine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Cuisine), args.Error(1)
}

func (m *MockCuisineService) RecipesByCuisine(ctx context.Context, ref, viewerID string) (*service.CuisineRecipes, error) {
	args := m.Called(ctx, ref, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CuisineRecipes), args.Error(1)
}
