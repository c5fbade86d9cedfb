package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/folio-inc/folio/internal/domain/content"
	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
)

type mockContentRepo struct {
	mock.Mock
}

func (m *mockContentRepo) Create(ctx context.Context, item *content.ContentItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockContentRepo) GetBySID(ctx context.Context, sid string) (*content.ContentItem, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ContentItem), args.Error(1)
}

func (m *mockContentRepo) GetBySIDs(ctx context.Context, sids []string) (*content.ItemBatch, error) {
	args := m.Called(ctx, sids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ItemBatch), args.Error(1)
}

func (m *mockContentRepo) FindDueForRelease(ctx context.Context, now time.Time, afterID uint, limit int) ([]content.DueRelease, error) {
	args := m.Called(ctx, now, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]content.DueRelease), args.Error(1)
}

func (m *mockContentRepo) ListScheduled(ctx context.Context, now time.Time, limit int) ([]*content.ContentItem, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.ContentItem), args.Error(1)
}

func (m *mockContentRepo) ListGatedByZones(ctx context.Context, now time.Time, zones []vo.Zone, limit int) ([]*content.ContentItem, error) {
	args := m.Called(ctx, now, zones, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*content.ContentItem), args.Error(1)
}

func (m *mockContentRepo) UpdateReleaseDate(ctx context.Context, sid string, releaseDate, now time.Time) (bool, error) {
	args := m.Called(ctx, sid, releaseDate, now)
	return args.Bool(0), args.Error(1)
}

func (m *mockContentRepo) MarkReleased(ctx context.Context, itemID uint, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, now)
	return args.Bool(0), args.Error(1)
}

var testNow = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

func premiumItem(t *testing.T, itemID uint, sid string, releaseDate *time.Time) *content.ContentItem {
	t.Helper()
	item, err := content.ReconstructContentItem(itemID, sid, "Title "+sid, "body", true,
		releaseDate, nil, nil, nil, 1, testNow, testNow)
	require.NoError(t, err)
	return item
}

func freeItem(t *testing.T, itemID uint, sid string) *content.ContentItem {
	t.Helper()
	item, err := content.ReconstructContentItem(itemID, sid, "Title "+sid, "body", false,
		nil, nil, nil, nil, 1, testNow, testNow)
	require.NoError(t, err)
	return item
}

func ptrTime(t time.Time) *time.Time { return &t }
