package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&row{}))
	return db
}

func TestRunInTransaction_Commit(t *testing.T) {
	gdb := setupTestDB(t)
	tm := NewTransactionManager(gdb)

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return GetTxFromContext(ctx, gdb).Create(&row{Name: "a"}).Error
	})
	require.NoError(t, err)

	var count int64
	gdb.Model(&row{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRunInTransaction_Rollback(t *testing.T) {
	gdb := setupTestDB(t)
	tm := NewTransactionManager(gdb)
	boom := errors.New("boom")

	err := tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := GetTxFromContext(ctx, gdb).Create(&row{Name: "a"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	gdb.Model(&row{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
