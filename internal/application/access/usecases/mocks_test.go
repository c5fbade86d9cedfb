package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/folio-inc/folio/internal/domain/content"
	vo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/domain/subscription"
	subvo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
	"github.com/folio-inc/folio/internal/infrastructure/cache"
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

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, viewerID string) (*subscription.Subscription, error) {
	args := m.Called(ctx, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockResolver) Invalidate(ctx context.Context, viewerID string) error {
	return m.Called(ctx, viewerID).Error(0)
}

type mockInterestStore struct {
	mock.Mock
}

func (m *mockInterestStore) Record(ctx context.Context, viewerID string, zones []vo.Zone) error {
	return m.Called(ctx, viewerID, zones).Error(0)
}

func (m *mockInterestStore) Top(ctx context.Context, viewerID string, n int) ([]cache.ZoneScore, error) {
	args := m.Called(ctx, viewerID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cache.ZoneScore), args.Error(1)
}

var testNow = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

type itemOpt func(*itemSpec)

type itemSpec struct {
	premium     bool
	releaseDate *time.Time
	zones       []vo.ZoneRequirement
	preview     *int
	body        string
}

func premium() itemOpt { return func(s *itemSpec) { s.premium = true } }

func releasingAt(t time.Time) itemOpt { return func(s *itemSpec) { s.releaseDate = &t } }

func inZone(z vo.Zone, gated bool) itemOpt {
	return func(s *itemSpec) {
		s.zones = append(s.zones, vo.ZoneRequirement{Zone: z, RequiresSubscription: gated})
	}
}

func withPreview(n int) itemOpt { return func(s *itemSpec) { s.preview = &n } }

func withBody(b string) itemOpt { return func(s *itemSpec) { s.body = b } }

func newItem(t *testing.T, itemID uint, sid string, opts ...itemOpt) *content.ContentItem {
	t.Helper()
	spec := itemSpec{body: "body"}
	for _, o := range opts {
		o(&spec)
	}
	item, err := content.ReconstructContentItem(itemID, sid, "Title "+sid, spec.body, spec.premium,
		spec.releaseDate, nil, spec.zones, spec.preview, 1, testNow, testNow)
	require.NoError(t, err)
	return item
}

func activeSubscription(t *testing.T, zones ...vo.Zone) *subscription.Subscription {
	t.Helper()
	plan, err := subscription.NewPlan(1, "pl_test", "Test", zones)
	require.NoError(t, err)
	sub, err := subscription.ReconstructSubscription(1, "sub_test", "vw_reader", plan, subvo.StatusActive,
		testNow.AddDate(0, -1, 0), testNow.AddDate(0, 1, 0), false)
	require.NoError(t, err)
	return sub
}

func ptrTime(t time.Time) *time.Time { return &t }
