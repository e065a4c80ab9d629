package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	for _, key := range []string{
		"CI", "ENV", "SERVER_HOST", "SERVER_PORT", "DB_HOST", "DB_PASSWORD", "JWT_SECRET",
		"JWT_TTL_HOURS", "MEDIA_BACKEND", "S3_BUCKET_NAME", "MAX_UPLOAD_MB", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, MediaDisk, cfg.MediaBackend)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
}

func TestLoadConfigFromSecrets(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "db_password"), []byte("s3cret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file"), 0o600))
	t.Setenv("ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Env)
	assert.Equal(t, "s3cret", cfg.DBPassword)
	assert.Equal(t, "from-file", cfg.JWTSecret)
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
	assert.Contains(t, err.Error(), "db_password")
}

func TestValidateConfigMediaBackend(t *testing.T) {
	cfg := &Config{Env: Development, JWTTTL: time.Hour, MaxUploadBytes: 1, MediaBackend: MediaS3}
	assert.Error(t, ValidateConfig(cfg))

	cfg.S3BucketName = "bucket"
	assert.NoError(t, ValidateConfig(cfg))

	cfg.MediaBackend = "ftp"
	assert.Error(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "Test")
	assert.Equal(t, Test, GetEnvironment())
}
