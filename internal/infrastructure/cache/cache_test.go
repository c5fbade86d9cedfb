package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentvo "github.com/folio-inc/folio/internal/domain/content/valueobjects"
	"github.com/folio-inc/folio/internal/domain/subscription"
	vo "github.com/folio-inc/folio/internal/domain/subscription/valueobjects"
	"github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func newTestSubscription(t *testing.T) *subscription.Subscription {
	t.Helper()
	plan, err := subscription.NewPlan(7, "pl_research", "Research", []contentvo.Zone{contentvo.ZoneResearch, contentvo.ZoneAnalysis})
	require.NoError(t, err)
	sub, err := subscription.ReconstructSubscription(
		3, "sub_abc", "vw_reader", plan, vo.StatusActive,
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		true,
	)
	require.NoError(t, err)
	return sub
}

func TestRedisEntitlementCache_RoundTrip(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisEntitlementCache(client, 5*time.Minute, 30*time.Second, logger.NewNopLogger())
	ctx := context.Background()

	got, err := c.Get(ctx, "vw_reader")
	require.NoError(t, err)
	assert.Nil(t, got, "miss should be nil")

	require.NoError(t, c.Set(ctx, "vw_reader", NewCachedEntitlement(newTestSubscription(t))))

	ttl := mr.TTL("folio:entitlement:vw_reader")
	assert.GreaterOrEqual(t, ttl, 5*time.Minute)
	assert.LessOrEqual(t, ttl, 5*time.Minute+75*time.Second)

	got, err = c.Get(ctx, "vw_reader")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.NotFound)

	sub, err := got.ToSubscription("vw_reader")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "sub_abc", sub.SID())
	assert.Equal(t, "pl_research", sub.Plan().SID())
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.CancelAtPeriodEnd())
	assert.True(t, sub.Entitles([]contentvo.Zone{contentvo.ZoneResearch}))
	assert.False(t, sub.Entitles([]contentvo.Zone{contentvo.ZoneSeries}))
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), sub.CurrentPeriodEnd())
}

func TestRedisEntitlementCache_KeepsSubSecondPeriodBounds(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisEntitlementCache(client, time.Minute, time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	plan, err := subscription.NewPlan(7, "pl_research", "Research", []contentvo.Zone{contentvo.ZoneResearch})
	require.NoError(t, err)
	start := time.Date(2025, 8, 1, 9, 30, 0, 250_000_000, time.UTC)
	end := time.Date(2025, 9, 1, 9, 30, 0, 999_000_000, time.UTC)
	stored, err := subscription.ReconstructSubscription(3, "sub_abc", "vw_reader", plan, vo.StatusActive, start, end, false)
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, "vw_reader", NewCachedEntitlement(stored)))
	got, err := c.Get(ctx, "vw_reader")
	require.NoError(t, err)
	cached, err := got.ToSubscription("vw_reader")
	require.NoError(t, err)

	assert.True(t, start.Equal(cached.CurrentPeriodStart()))
	assert.True(t, end.Equal(cached.CurrentPeriodEnd()))

	// half a second before the stored end the cached copy must still grant access
	justBefore := end.Add(-500 * time.Millisecond)
	assert.Equal(t, stored.IsActive(justBefore), cached.IsActive(justBefore))
	assert.True(t, cached.IsActive(justBefore))
}

func TestRedisEntitlementCache_NullMarker(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisEntitlementCache(client, 5*time.Minute, 30*time.Second, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, c.SetNullMarker(ctx, "vw_nobody"))
	assert.Equal(t, 30*time.Second, mr.TTL("folio:entitlement:vw_nobody"))

	got, err := c.Get(ctx, "vw_nobody")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.NotFound)

	sub, err := got.ToSubscription("vw_nobody")
	require.NoError(t, err)
	assert.Nil(t, sub)

	mr.FastForward(31 * time.Second)
	got, err = c.Get(ctx, "vw_nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisEntitlementCache_SetReplacesNullMarker(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisEntitlementCache(client, time.Minute, time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, c.SetNullMarker(ctx, "vw_reader"))
	require.NoError(t, c.Set(ctx, "vw_reader", NewCachedEntitlement(newTestSubscription(t))))

	assert.Empty(t, mr.HGet("folio:entitlement:vw_reader", fieldNullMarker))

	got, err := c.Get(ctx, "vw_reader")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.NotFound)
}

func TestRedisEntitlementCache_Invalidate(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisEntitlementCache(client, time.Minute, time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "vw_reader", NewCachedEntitlement(newTestSubscription(t))))
	require.NoError(t, c.Invalidate(ctx, "vw_reader"))
	assert.False(t, mr.Exists("folio:entitlement:vw_reader"))
}

func TestRedisEntitlementCache_ReadError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisEntitlementCache(client, time.Minute, time.Minute, logger.NewNopLogger())

	mock.ExpectHGetAll("folio:entitlement:vw_reader").SetErr(assert.AnError)

	got, err := c.Get(context.Background(), "vw_reader")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisEntitlementCache_CorruptEntry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisEntitlementCache(client, time.Minute, time.Minute, logger.NewNopLogger())

	mock.ExpectHGetAll("folio:entitlement:vw_reader").SetVal(map[string]string{
		fieldStatus:      "active",
		fieldPeriodStart: "not-a-number",
	})

	_, err := c.Get(context.Background(), "vw_reader")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestLocalEntitlementCache(t *testing.T) {
	c := NewLocalEntitlementCache(2, time.Minute, 10*time.Second)
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	got, err := c.Get(ctx, "vw_a")
	require.NoError(t, err)
	assert.Nil(t, got)

	entry := NewCachedEntitlement(newTestSubscription(t))
	require.NoError(t, c.Set(ctx, "vw_a", entry))
	got, err = c.Get(ctx, "vw_a")
	require.NoError(t, err)
	assert.Same(t, entry, got)

	t.Run("null marker expires on its own deadline", func(t *testing.T) {
		require.NoError(t, c.SetNullMarker(ctx, "vw_b"))
		got, err := c.Get(ctx, "vw_b")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.NotFound)

		now = now.Add(11 * time.Second)
		got, err = c.Get(ctx, "vw_b")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate", func(t *testing.T) {
		require.NoError(t, c.Invalidate(ctx, "vw_a"))
		got, err := c.Get(ctx, "vw_a")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestNewEntitlementCache(t *testing.T) {
	log := logger.NewNopLogger()

	local, err := NewEntitlementCache(config.EntitlementCacheConfig{Backend: config.CacheBackendLocal, Size: 10}, nil, log)
	require.NoError(t, err)
	assert.IsType(t, &LocalEntitlementCache{}, local)

	_, err = NewEntitlementCache(config.EntitlementCacheConfig{Backend: config.CacheBackendRedis}, nil, log)
	assert.Error(t, err)

	_, err = NewEntitlementCache(config.EntitlementCacheConfig{Backend: "memcached"}, nil, log)
	assert.Error(t, err)
}

func TestTTLWithJitter(t *testing.T) {
	base := 4 * time.Minute
	for i := 0; i < 50; i++ {
		ttl := ttlWithJitter(base)
		assert.GreaterOrEqual(t, ttl, base)
		assert.Less(t, ttl, base+time.Minute)
	}
	assert.Equal(t, time.Duration(0), ttlWithJitter(0))
}

func TestZoneInterestStore(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	s := NewZoneInterestStore(client, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "vw_reader", []contentvo.Zone{contentvo.ZoneResearch, contentvo.ZoneSeries}))
	require.NoError(t, s.Record(ctx, "vw_reader", []contentvo.Zone{contentvo.ZoneResearch}))
	require.NoError(t, s.Record(ctx, "", []contentvo.Zone{contentvo.ZoneNews}))

	_, err := mr.ZAdd("folio:interest:vw_reader", 0.5, "astrology")
	require.NoError(t, err)

	top, err := s.Top(ctx, "vw_reader", 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, contentvo.ZoneResearch, top[0].Zone)
	assert.Equal(t, float64(2), top[0].Score)
	assert.Equal(t, contentvo.ZoneSeries, top[1].Zone)
	assert.Greater(t, mr.TTL("folio:interest:vw_reader"), time.Duration(0))

	top, err = s.Top(ctx, "vw_unknown", 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}
