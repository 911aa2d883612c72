package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresCatalogURL(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "")

	_, err := LoadConfig(writeEnvFile(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_API_URL")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "http://catalog.local/api")
	t.Setenv("FAVORITES_STORE", "memory")

	cfg, err := LoadConfig(writeEnvFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.local/api", cfg.CatalogApi.URL)
	assert.Equal(t, 10*time.Second, cfg.CatalogApi.Timeout)
	assert.Equal(t, 12, cfg.CatalogApi.PageSize)
	assert.Equal(t, 3, cfg.Featured.MaxRetries)
	assert.Equal(t, time.Second, cfg.Featured.BaseDelay)
	assert.Equal(t, "memory", cfg.Favorites.Store)
}

func TestLoadConfig_FromEnvFile(t *testing.T) {
	for _, key := range []string{"CATALOG_API_URL", "CATALOG_API_TIMEOUT", "FEATURED_BASE_DELAY_MS", "CORS_ALLOWED_ORIGINS", "FAVORITES_STORE", "REDIS_ADDR"} {
		unsetForTest(t, key)
	}

	path := writeEnvFile(t, `CATALOG_API_URL=http://from-file/api
CATALOG_API_TIMEOUT=5s
FEATURED_BASE_DELAY_MS=250
CORS_ALLOWED_ORIGINS=http://a.test, http://b.test
FAVORITES_STORE=redis
REDIS_ADDR=redis:6379
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-file/api", cfg.CatalogApi.URL)
	assert.Equal(t, 5*time.Second, cfg.CatalogApi.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Featured.BaseDelay)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Rest.CorsAllowedOrigins)
	assert.Equal(t, "redis", cfg.Favorites.Store)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadConfig_UnknownStore(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "http://catalog.local/api")
	t.Setenv("FAVORITES_STORE", "mongo")

	_, err := LoadConfig(writeEnvFile(t, ""))
	assert.Error(t, err)
}

func TestLoadConfig_PostgresNeedsDatabaseURL(t *testing.T) {
	t.Setenv("CATALOG_API_URL", "http://catalog.local/api")
	t.Setenv("FAVORITES_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig(writeEnvFile(t, ""))
	assert.Error(t, err)
}

func TestLoadConfig_MissingExplicitEnvFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "15")
	assert.Equal(t, 15*time.Second, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "1m")
	assert.Equal(t, time.Minute, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// unsetForTest убирает переменную на время теста: godotenv не перезаписывает уже заданные.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
