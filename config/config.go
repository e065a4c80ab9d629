package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// Media backends
const (
	MediaDisk = "disk"
	MediaS3   = "s3"
)

// Config holds all configuration for the application. It is loaded once at
// startup and passed explicitly to the services that need it.
type Config struct {
	Env Environment

	// Server configuration
	ServerHost  string
	ServerPort  string
	CORSOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration, empty URL disables the list cache
	RedisURL string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Media configuration
	MediaBackend   string
	UploadDir      string
	S3BucketName   string
	AWSRegion      string
	MaxUploadBytes int64
}

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch Environment(strings.ToLower(os.Getenv("ENV"))) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

// LoadConfig builds a Config from a .env file, environment variables and
// Docker secrets, in that order of precedence after the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := &Config{
		Env:          GetEnvironment(),
		ServerHost:   lookup("SERVER_HOST", "0.0.0.0"),
		ServerPort:   lookup("SERVER_PORT", "8080"),
		CORSOrigins:  splitList(lookup("CORS_ORIGINS", "http://localhost:5173")),
		DBHost:       lookup("DB_HOST", "localhost"),
		DBPort:       lookup("DB_PORT", "5432"),
		DBUser:       lookup("DB_USER", "postgres"),
		DBPassword:   lookup("DB_PASSWORD", ""),
		DBName:       lookup("DB_NAME", "recipeshare"),
		DBSSLMode:    lookup("DB_SSL_MODE", "disable"),
		RedisURL:     lookup("REDIS_URL", ""),
		JWTSecret:    lookup("JWT_SECRET", ""),
		MediaBackend: strings.ToLower(lookup("MEDIA_BACKEND", MediaDisk)),
		UploadDir:    lookup("UPLOAD_DIR", "uploads"),
		S3BucketName: lookup("S3_BUCKET_NAME", ""),
		AWSRegion:    lookup("AWS_REGION", "us-east-1"),
	}

	ttlHours, err := strconv.Atoi(lookup("JWT_TTL_HOURS", "24"))
	if err != nil {
		return nil, ValidationError{Field: "JWT_TTL_HOURS", Message: "must be an integer"}
	}
	cfg.JWTTTL = time.Duration(ttlHours) * time.Hour

	maxMB, err := strconv.Atoi(lookup("MAX_UPLOAD_MB", "5"))
	if err != nil {
		return nil, ValidationError{Field: "MAX_UPLOAD_MB", Message: "must be an integer"}
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20

	if cfg.JWTSecret == "" && cfg.Env != Production {
		cfg.JWTSecret = "dev-secret-change-me"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the values that cannot be defaulted safely
func ValidateConfig(cfg *Config) error {
	var problems []string

	if cfg.Env == Production {
		if cfg.DBPassword == "" {
			problems = append(problems, "db_password secret is required")
		}
		if cfg.JWTSecret == "" {
			problems = append(problems, "jwt_secret secret is required")
		}
	}
	if cfg.JWTTTL <= 0 {
		problems = append(problems, "JWT_TTL_HOURS must be positive")
	}
	if cfg.MaxUploadBytes <= 0 {
		problems = append(problems, "MAX_UPLOAD_MB must be positive")
	}

	switch cfg.MediaBackend {
	case MediaDisk:
		if cfg.UploadDir == "" {
			problems = append(problems, "UPLOAD_DIR is required for the disk media backend")
		}
	case MediaS3:
		if cfg.S3BucketName == "" {
			problems = append(problems, "S3_BUCKET_NAME is required for the s3 media backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown MEDIA_BACKEND %q", cfg.MediaBackend))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "\n"))
	}
	return nil
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// lookup resolves a key from the environment, then from a Docker secret named
// after the lower-cased key, then falls back to def.
func lookup(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
