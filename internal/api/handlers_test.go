package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type routes interface {
	RegisterRoutes(router *gin.RouterGroup)
}

func serve(h routes, method, path, token, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h.RegisterRoutes(&engine.RouterGroup)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func authFor(userID string) *mocks.MockAuthService {
	auth := &mocks.MockAuthService{}
	auth.On("ValidateToken", "valid").Return(&types.TokenClaims{UserID: userID, Name: "ann"}, nil)
	auth.On("ValidateToken", mock.Anything).Return(nil, errors.New("invalid token"))
	return auth
}

func TestInternalErrorsAreMasked(t *testing.T) {
	recipes := &mocks.MockRecipeService{}
	recipes.On("GetRecipe", mock.Anything, "r1", "").
		Return(nil, apperrors.Internal(errors.New("connection refused")))

	w := serve(api.NewRecipeHandler(recipes, authFor("u1")), http.MethodGet, "/recipes/recipe/r1", "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")
	recipes.AssertExpectations(t)
}

func TestListRecipesPassesViewerAndQuery(t *testing.T) {
	recipes := &mocks.MockRecipeService{}
	recipes.On("ListRecipes", mock.Anything, "u1", types.ListQuery{Page: 2, Limit: 5, Sort: "oldest"}).
		Return(&types.RecipePage{Recipes: []models.Recipe{}, Page: 2, Limit: 5}, nil)
	h := api.NewRecipeHandler(recipes, authFor("u1"))

	w := serve(h, http.MethodGet, "/recipes/recipes?page=2&limit=5&sort=oldest", "valid", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(h, http.MethodGet, "/recipes/recipes?limit=-1", "valid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	recipes.AssertNumberOfCalls(t, "ListRecipes", 1)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	recipes := &mocks.MockRecipeService{}
	recipes.On("GetRecipe", mock.Anything, "r1", "").Return(&models.Recipe{ID: "r1", IsPublic: true}, nil)

	w := serve(api.NewRecipeHandler(recipes, authFor("u1")), http.MethodGet, "/recipes/recipe/r1", "forged", "")
	assert.Equal(t, http.StatusOK, w.Code)
	recipes.AssertExpectations(t)
}

func TestDeleteRecipeRequiresToken(t *testing.T) {
	recipes := &mocks.MockRecipeService{}
	h := api.NewRecipeHandler(recipes, authFor("u1"))

	w := serve(h, http.MethodDelete, "/recipes/delete/recipe/r1", "forged", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	recipes.AssertNotCalled(t, "DeleteRecipe", mock.Anything, mock.Anything, mock.Anything)
}

func TestCuisineStatusReflectsCreation(t *testing.T) {
	cuisines := &mocks.MockCuisineService{}
	cuisines.On("GetOrCreate", mock.Anything, "Thai").Return(&models.Cuisine{ID: "c1", Name: "Thai"}, true, nil).Once()
	cuisines.On("GetOrCreate", mock.Anything, "Thai").Return(&models.Cuisine{ID: "c1", Name: "Thai"}, false, nil).Once()
	h := api.NewCuisineHandler(cuisines, authFor("u1"))

	w := serve(h, http.MethodPost, "/cuisines/craeteCuisine", "valid", `{"name":"Thai"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = serve(h, http.MethodPost, "/cuisines/craeteCuisine", "valid", `{"name":"Thai"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	cuisines.AssertExpectations(t)
}

func TestCheckOwnerUsesAuthService(t *testing.T) {
	auth := authFor("u1")
	auth.On("VerifyRecipeOwner", mock.Anything, "r1", "ann", "secret").Return(true, nil)

	w := serve(api.NewRecipeHandler(&mocks.MockRecipeService{}, auth), http.MethodPost, "/recipes/check-recipe-owner", "",
		`{"recipeId":"r1","name":"ann","password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isOwner":true}`, w.Body.String())
}
