package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type UserHandler struct {
	users service.IUserService
	auth  service.IAuthService
}

func NewUserHandler(users service.IUserService, auth service.IAuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("/user", h.CreateUser)
		users.POST("/login", h.Login)
		users.GET("/users", h.ListUsers)
		users.GET("/user/:id", h.GetUser)
		users.PUT("/update/user/:id", middleware.RequireAuth(h.auth), h.UpdateUser)
		users.DELETE("/delete/user/:id", middleware.RequireAuth(h.auth), h.DeleteUser)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	in, image, err := bindUserInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), in, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := bind(c, &req); err != nil {
		respondError(c, err)
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.LoginResponse{Token: token, User: user})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if err := requireSelf(c, id); err != nil {
		respondError(c, err)
		return
	}

	in, image, err := bindUserInput(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), id, in, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := requireSelf(c, id); err != nil {
		respondError(c, err)
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	message(c, http.StatusOK, "User deleted successfully")
}
