package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/folio-inc/folio/internal/shared/config"
	appLogger "github.com/folio-inc/folio/internal/shared/logger"
)

func openFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	db := openFileDB(t)
	ctx := context.Background()

	strategy, err := NewGooseStrategy(config.DriverSQLite, appLogger.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, "goose", strategy.GetName())

	require.NoError(t, strategy.Migrate(ctx, db))

	version, err := strategy.GetVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, table := range []string{"plans", "subscriptions", "content_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// running again is a no-op
	require.NoError(t, strategy.Migrate(ctx, db))

	require.NoError(t, strategy.MigrateDown(ctx, db, 1))
	assert.False(t, db.Migrator().HasTable("content_items"))

	version, err = strategy.GetVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
}

func TestNewGooseStrategy_UnknownDriver(t *testing.T) {
	_, err := NewGooseStrategy("oracle", appLogger.NewNopLogger())
	assert.Error(t, err)
}

func TestAutoMigrateStrategy(t *testing.T) {
	db := openFileDB(t)

	strategy := NewAutoMigrateStrategy(appLogger.NewNopLogger())
	require.NoError(t, strategy.Migrate(context.Background(), db))

	assert.True(t, db.Migrator().HasTable("content_items"))
	assert.True(t, db.Migrator().HasIndex("content_items", "idx_content_release"))
}

func TestNewStrategy(t *testing.T) {
	log := appLogger.NewNopLogger()

	s, err := NewStrategy("development", config.DriverMySQL, log)
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", s.GetName())

	s, err = NewStrategy("production", config.DriverPostgres, log)
	require.NoError(t, err)
	assert.Equal(t, "goose", s.GetName())
}
