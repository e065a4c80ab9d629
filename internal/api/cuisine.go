package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type CuisineHandler struct {
	cuisines service.ICuisineService
	auth     middleware.TokenValidator
}

func NewCuisineHandler(cuisines service.ICuisineService, auth middleware.TokenValidator) *CuisineHandler {
	return &CuisineHandler{cuisines: cuisines, auth: auth}
}

func (h *CuisineHandler) RegisterRoutes(router *gin.RouterGroup) {
	cuisines := router.Group("/cuisines", middleware.RequireAuth(h.auth))
	{
		cuisines.POST("/craeteCuisine", h.GetOrCreate)
		cuisines.GET("/getAllcuisines", h.ListCuisines)
		cuisines.GET("/:idOrName/recipes", h.RecipesByCuisine)
	}
}

// GetOrCreate answers 201 for a new cuisine and 200 when it already existed
func (h *CuisineHandler) GetOrCreate(c *gin.Context) {
	var req types.CuisineRequest
	if err := bind(c, &req); err != nil {
		respondError(c, err)
		return
	}

	cuisine, created, err := h.cuisines.GetOrCreate(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, cuisine)
}

func (h *CuisineHandler) ListCuisines(c *gin.Context) {
	cuisines, err := h.cuisines.ListCuisines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cuisines)
}

func (h *CuisineHandler) RecipesByCuisine(c *gin.Context) {
	result, err := h.cuisines.RecipesByCuisine(c.Request.Context(), c.Param("idOrName"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
