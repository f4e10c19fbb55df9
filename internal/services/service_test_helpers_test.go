// internal/services/service_test_helpers_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avpetrescu/catalog-admin/internal/config"
	"github.com/avpetrescu/catalog-admin/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:       "sqlite",
		Database:     "file::memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxLifetime:  300,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
	}
}

func newTestStorage(t *testing.T) (*StorageService, string) {
	t.Helper()

	dir := t.TempDir()
	storage, err := NewStorageService(config.StorageConfig{
		ImageDir:      dir,
		PublicPath:    "/images",
		MaxUploadSize: 10 * 1024 * 1024,
	})
	require.NoError(t, err)
	return storage, dir
}
