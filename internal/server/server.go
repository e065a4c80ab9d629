package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/cache"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// formOverhead is the room left for non-file form fields next to one upload
const formOverhead = 1 << 20

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New wires the services over db and returns a server ready to Start.
// listCache may be nil.
func New(cfg *config.Config, db *gorm.DB, store service.MediaStore, listCache cache.Cache) *Server {
	media := service.NewMediaService(store, cfg.MaxUploadBytes)
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	categories := service.NewCategoryService(db, media, listCache)
	cuisines := service.NewCuisineService(db, listCache)

	deps := router.Dependencies{
		Auth:         auth,
		Users:        service.NewUserService(db, media),
		Categories:   categories,
		Cuisines:     cuisines,
		Recipes:      service.NewRecipeService(db, media, categories, cuisines),
		CORSOrigins:  cfg.CORSOrigins,
		MaxBodyBytes: media.MaxBytes() + formOverhead,
		Ping: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
	}
	if cfg.MediaBackend == config.MediaDisk {
		deps.UploadDir = cfg.UploadDir
	}

	engine := router.SetupRouter(deps)
	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the routes for in-process testing
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
