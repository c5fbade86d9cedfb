package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/folio-inc/folio/internal/shared/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := Load("", path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 300, cfg.Access.DefaultPreviewLength)
	assert.Equal(t, 50, cfg.Access.BulkLimit)
	assert.Equal(t, 100, cfg.Release.BatchScheduleLimit)
	assert.Equal(t, time.Minute, cfg.Release.SweepInterval)
	assert.Equal(t, sharedConfig.CacheBackendRedis, cfg.Access.Cache.Backend)
	assert.Same(t, cfg, Get())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  database: ":memory:"
access:
  upgrade_url: /plans
  cache:
    backend: local
release:
  sweep_interval: 30s
`)
	t.Setenv("FOLIO_ACCESS_DEFAULT_PREVIEW_LENGTH", "120")

	cfg, err := Load("release", path)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, sharedConfig.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/plans", cfg.Access.UpgradeURL)
	assert.Equal(t, 120, cfg.Access.DefaultPreviewLength)
	assert.Equal(t, 30*time.Second, cfg.Release.SweepInterval)
	assert.Equal(t, sharedConfig.CacheBackendLocal, cfg.Access.Cache.Backend)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: oracle\n")

	_, err := Load("", path)
	assert.ErrorContains(t, err, "unsupported database driver")
}
