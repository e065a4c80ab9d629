package api_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
	"github.com/pageza/recipeshare/backend/internal/types"
)

func TestCreateRecipeJSON(t *testing.T) {
	a := setupTestAPI(t)
	ann, token := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")

	w := a.json(http.MethodPost, "/recipes/recipe", token, map[string]interface{}{
		"title":        "Pancakes",
		"category":     category.ID,
		"ingredients":  []string{"eggs", "flour"},
		"instructions": `["mix","fry"]`,
		"prepTime":     15,
		"imageUrl":     "https://img.example.com/pancakes.png",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe models.Recipe
	decode(t, w, &recipe)
	assert.Equal(t, ann.ID, recipe.UserID)
	require.NotNil(t, recipe.User)
	assert.Equal(t, "ann", recipe.User.Name)
	require.NotNil(t, recipe.Category)
	assert.Equal(t, "Breakfast", recipe.Category.Name)
	assert.Equal(t, models.StringArray{"mix", "fry"}, recipe.Instructions)
	assert.True(t, recipe.IsPublic)
}

func TestCreateRecipeMultipart(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")

	body, contentType := testhelpers.MultipartBody(t, map[string]string{
		"title":       "Waffles",
		"category":    category.ID,
		"ingredients": `["eggs","milk"]`,
		"isPublic":    "false",
	}, "waffles.jpg", []byte("jpeg"))
	w := a.do(http.MethodPost, "/recipes/recipe", token, contentType, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe models.Recipe
	decode(t, w, &recipe)
	assert.Equal(t, models.StringArray{"eggs", "milk"}, recipe.Ingredients)
	assert.False(t, recipe.IsPublic)
	assert.True(t, strings.HasPrefix(recipe.ImageURL, "/uploads/"))

	body, contentType = testhelpers.MultipartBody(t, map[string]string{
		"title":    "Gif waffles",
		"category": category.ID,
	}, "waffles.gif", []byte("gif"))
	w = a.do(http.MethodPost, "/recipes/recipe", token, contentType, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	a := setupTestAPI(t)
	w := a.json(http.MethodPost, "/recipes/recipe", "", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRecipeValidation(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")

	w := a.json(http.MethodPost, "/recipes/recipe", token, map[string]interface{}{
		"title": "Pancakes", "category": category.ID, "ingredients": "eggs and flour",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid format for ingredients", errorMessage(t, w))

	w = a.json(http.MethodPost, "/recipes/recipe", token, map[string]interface{}{
		"title": "Pancakes", "category": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.json(http.MethodPost, "/recipes/recipe", token, map[string]interface{}{
		"title": "Pancakes", "category": category.ID, "prepTime": -3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	a.db.Model(&models.Recipe{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateRecipeRejectsNonFinitePrepTime(t *testing.T) {
	a := setupTestAPI(t)
	_, token := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")

	for _, value := range []string{"Inf", "NaN"} {
		w := a.json(http.MethodPost, "/recipes/recipe", token, map[string]interface{}{
			"title": "Pancakes", "category": category.ID, "prepTime": value,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, value)
		assert.Equal(t, "prepTime must be a non-negative number", errorMessage(t, w))
	}

	w := a.do(http.MethodGet, "/recipes/recipes", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page types.RecipePage
	decode(t, w, &page)
	assert.Equal(t, int64(0), page.Total)
}

func TestDeletedUserTokenCannotCreateRecipe(t *testing.T) {
	a := setupTestAPI(t)
	ann, token := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")

	w := a.do(http.MethodDelete, "/users/delete/user/"+ann.ID, token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.json(http.MethodPost, "/recipes/recipe", token, map[string]interface{}{
		"title": "Pancakes", "category": category.ID,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", errorMessage(t, w))

	var count int64
	a.db.Model(&models.Recipe{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateRecipeOwnership(t *testing.T) {
	a := setupTestAPI(t)
	ann, annToken := a.user("ann")
	_, bobToken := a.user("bob")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")
	recipe := testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Pancakes", true)
	path := "/recipes/update/recipe/" + recipe.ID

	w := a.json(http.MethodPut, path, bobToken, map[string]string{"title": "Bob's pancakes"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.json(http.MethodPut, path, annToken, map[string]interface{}{"title": "Fluffy pancakes"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Recipe
	require.NoError(t, a.db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Fluffy pancakes", stored.Title)

	w = a.json(http.MethodPut, path, annToken, map[string]interface{}{
		"title":        "Broken",
		"instructions": "[oops",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid format for instructions", errorMessage(t, w))
	require.NoError(t, a.db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Fluffy pancakes", stored.Title)

	w = a.json(http.MethodPut, "/recipes/update/recipe/"+models.NewID(), annToken, map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecipeOwnership(t *testing.T) {
	a := setupTestAPI(t)
	ann, annToken := a.user("ann")
	_, bobToken := a.user("bob")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")
	recipe := testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Pancakes", true)
	path := "/recipes/delete/recipe/" + recipe.ID

	w := a.do(http.MethodDelete, path, bobToken, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodDelete, path, annToken, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodDelete, path, annToken, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecipeVisibility(t *testing.T) {
	a := setupTestAPI(t)
	ann, annToken := a.user("ann")
	_, bobToken := a.user("bob")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")
	private := testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Secret", false)
	testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Shared", true)

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/recipes/recipe/"+private.ID, annToken, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/recipes/recipe/"+private.ID, bobToken, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/recipes/recipe/"+private.ID, "", "", nil).Code)

	var page types.RecipePage
	w := a.do(http.MethodGet, "/recipes/public", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &page)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "Shared", page.Recipes[0].Title)

	w = a.do(http.MethodGet, "/recipes/recipes", annToken, "", nil)
	decode(t, w, &page)
	assert.Equal(t, int64(2), page.Total)

	w = a.do(http.MethodGet, "/recipes/user/"+ann.ID, bobToken, "", nil)
	decode(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
}

func TestListRecipesQuery(t *testing.T) {
	a := setupTestAPI(t)
	ann, _ := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")
	for _, title := range []string{"C", "A", "B"} {
		testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, title, true)
	}

	w := a.do(http.MethodGet, "/recipes/recipes?page=2&limit=2&sort=title", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page types.RecipePage
	decode(t, w, &page)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "C", page.Recipes[0].Title)

	w = a.do(http.MethodGet, "/recipes/recipes?page=9223372036854775807&limit=2", "", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var beyond types.RecipePage
	decode(t, w, &beyond)
	assert.Empty(t, beyond.Recipes)
	assert.Equal(t, int64(3), beyond.Total)

	for _, query := range []string{"page=0", "limit=abc", "sort=random"} {
		w := a.do(http.MethodGet, "/recipes/recipes?"+query, "", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestListByCategory(t *testing.T) {
	a := setupTestAPI(t)
	ann, _ := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")
	testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Pancakes", true)

	w := a.do(http.MethodGet, "/recipes/category/not-an-id", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/recipes/category/"+category.ID, "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page types.RecipePage
	decode(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
}

func TestSearchRecipes(t *testing.T) {
	a := setupTestAPI(t)
	ann, _ := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")
	testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Blueberry Pancakes", true)
	testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Omelette", true)

	w := a.do(http.MethodGet, "/recipes/recipe/search?name="+url.QueryEscape("pancake"), "", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page types.RecipePage
	decode(t, w, &page)
	require.Len(t, page.Recipes, 1)
	assert.Equal(t, "Blueberry Pancakes", page.Recipes[0].Title)

	w = a.do(http.MethodGet, "/recipes/recipe/search", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckRecipeOwner(t *testing.T) {
	a := setupTestAPI(t)
	ann, _ := a.user("ann")
	category := testhelpers.CreateTestCategory(t, a.db, "Breakfast")
	recipe := testhelpers.CreateTestRecipe(t, a.db, ann.ID, category.ID, "Pancakes", true)

	check := func(name, password string) bool {
		w := a.json(http.MethodPost, "/recipes/check-recipe-owner", "", map[string]string{
			"recipeId": recipe.ID, "name": name, "password": password,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var body struct {
			IsOwner bool `json:"isOwner"`
		}
		decode(t, w, &body)
		return body.IsOwner
	}
	assert.True(t, check("ann", testhelpers.TestPassword))
	assert.False(t, check("ann", "wrong"))
	assert.False(t, check("bob", testhelpers.TestPassword))

	w := a.json(http.MethodPost, "/recipes/check-recipe-owner", "", map[string]string{"recipeId": recipe.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "token")
}
