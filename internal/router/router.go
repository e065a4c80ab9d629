package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// UploadsPath is where files of the disk media backend are served from
const UploadsPath = "/uploads"

// Dependencies are the services the routes are served by
type Dependencies struct {
	Auth       service.IAuthService
	Users      service.IUserService
	Categories service.ICategoryService
	Cuisines   service.ICuisineService
	Recipes    service.IRecipeService

	CORSOrigins []string
	// MaxBodyBytes caps request bodies when positive
	MaxBodyBytes int64
	// UploadDir is served under UploadsPath when not empty
	UploadDir string
	Ping      api.Pinger
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger())
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(deps.CORSOrigins))
	if deps.MaxBodyBytes > 0 {
		router.Use(middleware.BodyLimit(deps.MaxBodyBytes))
	}
	router.NoRoute(middleware.NotFound())

	router.GET("/health", api.HealthCheck(deps.Ping))
	if deps.UploadDir != "" {
		router.Static(UploadsPath, deps.UploadDir)
	}

	root := router.Group("")
	api.NewUserHandler(deps.Users, deps.Auth).RegisterRoutes(root)
	api.NewCategoryHandler(deps.Categories, deps.Auth).RegisterRoutes(root)
	api.NewCuisineHandler(deps.Cuisines, deps.Auth).RegisterRoutes(root)
	api.NewRecipeHandler(deps.Recipes, deps.Auth).RegisterRoutes(root)

	return router
}
