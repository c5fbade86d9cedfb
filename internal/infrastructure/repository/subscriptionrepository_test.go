package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	vo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
	"github.com/folio-inc/folio/internal/infrastructure/persistence/models"
)

func seedSubscription(t *testing.T, db *gorm.DB, sid, viewer string, plan *models.PlanModel, status string, periodEnd time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.SubscriptionModel{
		SID:                sid,
		ViewerID:           viewer,
		PlanID:             plan.ID,
		Status:             status,
		CurrentPeriodStart: periodEnd.AddDate(0, -1, 0),
		CurrentPeriodEnd:   periodEnd,
	}).Error)
}

func TestSubscriptionRepository_GetCurrentByViewer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLogger)

	plan := &models.PlanModel{SID: "pl_pro", Name: "Pro", Zones: datatypes.JSON(`["analysis","research"]`)}
	require.NoError(t, db.Create(plan).Error)

	seedSubscription(t, db, "sub_old", "vw_reader", plan, string(vo.StatusCanceled), testNow.AddDate(0, -2, 0))
	seedSubscription(t, db, "sub_new", "vw_reader", plan, string(vo.StatusActive), testNow.AddDate(0, 0, 10))

	sub, err := repo.GetCurrentByViewer(context.Background(), "vw_reader")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "sub_new", sub.SID())
	assert.True(t, sub.IsActive(testNow))
	assert.True(t, sub.Entitles([]contentvo.Zone{contentvo.ZoneResearch}))

	none, err := repo.GetCurrentByViewer(context.Background(), "vw_stranger")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSubscriptionRepository_StoreFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `subscriptions`")).
		WillReturnError(assert.AnError)

	repo := NewSubscriptionRepository(gdb, testLogger)
	sub, err := repo.GetCurrentByViewer(context.Background(), "vw_reader")

	assert.Nil(t, sub)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
