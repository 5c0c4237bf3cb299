package handlers_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/database"
	"github.com/hpfxd/bibliothek/internal/server"
)

func newTestApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, database.Migrate())

	cfg := &config.Config{
		StorageRoot:     t.TempDir(),
		ArtifactTimeout: 5 * time.Second,
		JWTSecret:       "test-secret",
		AdminUsername:   "admin",
		AdminPassword:   "hunter2",
	}
	app := fiber.New()
	server.RegisterRoutes(app, cfg)
	return app, cfg
}
