package service

import (
	"context"
	"mime/multipart"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	VerifyRecipeOwner(ctx context.Context, recipeID, name, password string) (bool, error)
}

// IUserService defines the interface for user account operations
type IUserService interface {
	CreateUser(ctx context.Context, in types.UserInput, image *multipart.FileHeader) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in types.UserInput, image *multipart.FileHeader) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// ICategoryService defines the interface for category operations
type ICategoryService interface {
	CreateCategory(ctx context.Context, name string, image *multipart.FileHeader) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// ICuisineService defines the interface for cuisine operations
type ICuisineService interface {
	GetOrCreate(ctx context.Context, name string) (*models.Cuisine, bool, error)
	ListCuisines(ctx context.Context) ([]models.Cuisine, error)
	RecipesByCuisine(ctx context.Context, ref, viewerID string) (*CuisineRecipes, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, callerID string, in types.RecipeInput, image *multipart.FileHeader) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id, viewerID string) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id, callerID string, in types.RecipeInput, image *multipart.FileHeader) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, callerID string) error
	ListRecipes(ctx context.Context, viewerID string, q types.ListQuery) (*types.RecipePage, error)
	ListPublicRecipes(ctx context.Context, q types.ListQuery) (*types.RecipePage, error)
	ListByUser(ctx context.Context, userID, viewerID string, q types.ListQuery) (*types.RecipePage, error)
	ListByCategory(ctx context.Context, categoryID, viewerID string, q types.ListQuery) (*types.RecipePage, error)
	SearchRecipes(ctx context.Context, name, viewerID string, q types.ListQuery) (*types.RecipePage, error)
}

var (
	_ IAuthService     = (*AuthService)(nil)
	_ IUserService     = (*UserService)(nil)
	_ ICategoryService = (*CategoryService)(nil)
	_ ICuisineService  = (*CuisineService)(nil)
	_ IRecipeService   = (*RecipeService)(nil)
)
