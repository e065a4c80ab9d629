package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

type CategoryHandler struct {
	categories service.ICategoryService
	auth       middleware.TokenValidator
}

func NewCategoryHandler(categories service.ICategoryService, auth middleware.TokenValidator) *CategoryHandler {
	return &CategoryHandler{categories: categories, auth: auth}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	cat := router.Group("/cat", middleware.RequireAuth(h.auth))
	{
		cat.POST("/category", h.CreateCategory)
		cat.GET("/categories", h.ListCategories)
	}
}

// CreateCategory expects a multipart form with a name and an image file
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	if !isForm(c) {
		respondError(c, apperrors.Validation("Name and image are required"))
		return
	}
	values, image, err := readForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var name string
	if v := values["name"]; len(v) > 0 {
		name = strings.TrimSpace(v[0])
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), name, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
