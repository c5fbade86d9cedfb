package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
	"github.com/folio-inc/folio/internal/shared/logger"
)

var (
	testNow    = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	testLogger = logger.NewNopLogger()
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func insertItem(t *testing.T, db *gorm.DB, sid string, premium bool, release *time.Time, zones string) *models.ContentItemModel {
	t.Helper()
	if zones == "" {
		zones = "[]"
	}
	m := &models.ContentItemModel{
		SID:         sid,
		Title:       "Title " + sid,
		Body:        "Body",
		IsPremium:   premium,
		ReleaseDate: release,
		Zones:       datatypes.JSON(zones),
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func at(d time.Duration) *time.Time {
	t := testNow.Add(d)
	return &t
}
