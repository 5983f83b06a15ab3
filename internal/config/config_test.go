package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Clear anything the surrounding environment may carry. t.Setenv records
	// the value to restore; the explicit unset makes envconfig fall back to
	// the struct defaults.
	for _, key := range []string{"ENV", "LOG_LEVEL", "PORT", "DATABASE_URL", "DATABASE_NAME", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "wyr", cfg.DatabaseName)
	assert.True(t, cfg.AllowAllOrigins())
	assert.Nil(t, cfg.GetAllowedOrigins())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "wyr_staging")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	assert.Equal(t, "wyr_staging", cfg.DatabaseName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.AllowAllOrigins())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.GetAllowedOrigins())
}
