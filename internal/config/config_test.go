// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "./static/images", cfg.Storage.ImageDir)
	assert.Equal(t, "/images", cfg.Storage.PublicPath)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxUploadSize)
	assert.Equal(t, 3, cfg.Dashboard.MessageTTL)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Dashboard.APIBaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "./catalog.db")
	t.Setenv("DASHBOARD_MESSAGE_TTL", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./catalog.db", cfg.Database.Database)
	assert.Equal(t, 5, cfg.Dashboard.MessageTTL)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateRequiresProductionSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)
}
