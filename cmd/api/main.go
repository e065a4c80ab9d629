package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/cache"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/server"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func main() {
	ctx := context.Background()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := newMediaStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to set up media storage: %v", err)
	}

	// The list cache is optional, the API runs against the database alone
	var listCache cache.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable, continuing without list cache: %v", err)
		} else {
			defer redisCache.Close()
			listCache = redisCache
		}
	}

	srv := server.New(cfg, db, store, listCache)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	// Gracefully shutdown the server
	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func newMediaStore(ctx context.Context, cfg *config.Config) (service.MediaStore, error) {
	if cfg.MediaBackend != config.MediaS3 {
		return service.NewDiskStore(cfg.UploadDir, router.UploadsPath)
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := s3Config.SetupBucketPolicy(ctx); err != nil {
		log.Printf("Warning: failed to set bucket policy on %s: %v", s3Config.BucketName, err)
	}
	return service.NewS3Store(s3Config), nil
}
