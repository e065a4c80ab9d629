package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	auth    service.IAuthService
}

func NewRecipeHandler(recipes service.IRecipeService, auth service.IAuthService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, auth: auth}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.RequireAuth(h.auth)
	optionalAuth := middleware.OptionalAuth(h.auth)

	recipes := router.Group("/recipes")
	{
		recipes.POST("/recipe", requireAuth, h.CreateRecipe)
		recipes.GET("/recipes", optionalAuth, h.ListRecipes)
		recipes.GET("/public", h.ListPublicRecipes)
		recipes.GET("/recipe/search", optionalAuth, h.SearchRecipes)
		recipes.GET("/recipe/:id", optionalAuth, h.GetRecipe)
		recipes.PUT("/update/recipe/:id", requireAuth, h.UpdateRecipe)
		recipes.DELETE("/delete/recipe/:id", requireAuth, h.DeleteRecipe)
		recipes.GET("/user/:userId", optionalAuth, h.ListByUser)
		recipes.GET("/category/:categoryId", optionalAuth, h.ListByCategory)
		recipes.POST("/check-recipe-owner", h.CheckOwner)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	in, image, err := bindRecipeInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, in, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	in, image, err := bindRecipeInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), c.Param("id"), userID, in, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusOK, "Recipe deleted successfully")
}

// page runs a paginated listing with the query string's page, limit and sort
func (h *RecipeHandler) page(c *gin.Context, list func(q types.ListQuery) (*types.RecipePage, error)) {
	q, err := listQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := list(q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	h.page(c, func(q types.ListQuery) (*types.RecipePage, error) {
		return h.recipes.ListRecipes(c.Request.Context(), middleware.CallerID(c), q)
	})
}

func (h *RecipeHandler) ListPublicRecipes(c *gin.Context) {
	h.page(c, func(q types.ListQuery) (*types.RecipePage, error) {
		return h.recipes.ListPublicRecipes(c.Request.Context(), q)
	})
}

func (h *RecipeHandler) ListByUser(c *gin.Context) {
	h.page(c, func(q types.ListQuery) (*types.RecipePage, error) {
		return h.recipes.ListByUser(c.Request.Context(), c.Param("userId"), middleware.CallerID(c), q)
	})
}

func (h *RecipeHandler) ListByCategory(c *gin.Context) {
	h.page(c, func(q types.ListQuery) (*types.RecipePage, error) {
		return h.recipes.ListByCategory(c.Request.Context(), c.Param("categoryId"), middleware.CallerID(c), q)
	})
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	h.page(c, func(q types.ListQuery) (*types.RecipePage, error) {
		return h.recipes.SearchRecipes(c.Request.Context(), c.Query("name"), middleware.CallerID(c), q)
	})
}

// CheckOwner re-proves authorship with the owner's name and password
func (h *RecipeHandler) CheckOwner(c *gin.Context) {
	var req types.CheckOwnerRequest
	if err := bind(c, &req); err != nil {
		respondError(c, err)
		return
	}

	isOwner, err := h.auth.VerifyRecipeOwner(c.Request.Context(), req.RecipeID, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isOwner": isOwner})
}
