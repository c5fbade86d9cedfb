package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/folio-inc/folio/internal/shared/constants"
	"github.com/folio-inc/folio/internal/shared/logger"
)

const (
	fieldSubscriptionID  = "sub_id"
	fieldSubscriptionSID = "sub_sid"
	fieldPlanID          = "plan_id"
	fieldPlanSID         = "plan_sid"
	fieldPlanName        = "plan_name"
	fieldZones           = "zones"
	fieldStatus          = "status"
	fieldPeriodStart     = "period_start"
	fieldPeriodEnd       = "period_end"
	fieldCancelAtEnd     = "cancel_at_end"
	fieldNullMarker      = "_null"
)

// RedisEntitlementCache keeps one hash per viewer.
type RedisEntitlementCache struct {
	client      redis.Cmdable
	ttl         time.Duration
	negativeTTL time.Duration
	logger      logger.Interface
}

func NewRedisEntitlementCache(client redis.Cmdable, ttl, negativeTTL time.Duration, logger logger.Interface) *RedisEntitlementCache {
	return &RedisEntitlementCache{
		client:      client,
		ttl:         ttl,
		negativeTTL: negativeTTL,
		logger:      logger,
	}
}

func (c *RedisEntitlementCache) key(viewerID string) string {
	return fmt.Sprintf(constants.SubscriptionCacheKeyPattern, viewerID)
}

func (c *RedisEntitlementCache) Get(ctx context.Context, viewerID string) (*CachedEntitlement, error) {
	result, err := c.client.HGetAll(ctx, c.key(viewerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read entitlement cache: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}
	if result[fieldNullMarker] == "1" {
		return &CachedEntitlement{NotFound: true}, nil
	}

	e := &CachedEntitlement{
		SubscriptionSID:   result[fieldSubscriptionSID],
		PlanSID:           result[fieldPlanSID],
		PlanName:          result[fieldPlanName],
		Status:            result[fieldStatus],
		CancelAtPeriodEnd: result[fieldCancelAtEnd] == "1",
	}
	if v := result[fieldZones]; v != "" {
		e.Zones = strings.Split(v, ",")
	}
	subID, _ := strconv.ParseUint(result[fieldSubscriptionID], 10, 64)
	planID, _ := strconv.ParseUint(result[fieldPlanID], 10, 64)
	e.SubscriptionID = uint(subID)
	e.PlanID = uint(planID)

	start, err := time.Parse(time.RFC3339Nano, result[fieldPeriodStart])
	if err != nil {
		return nil, fmt.Errorf("corrupt entitlement cache entry for %s: %w", viewerID, err)
	}
	end, err := time.Parse(time.RFC3339Nano, result[fieldPeriodEnd])
	if err != nil {
		return nil, fmt.Errorf("corrupt entitlement cache entry for %s: %w", viewerID, err)
	}
	e.PeriodStart = start.UTC()
	e.PeriodEnd = end.UTC()
	return e, nil
}

func (c *RedisEntitlementCache) Set(ctx context.Context, viewerID string, e *CachedEntitlement) error {
	key := c.key(viewerID)
	fields := map[string]interface{}{
		fieldSubscriptionID:  e.SubscriptionID,
		fieldSubscriptionSID: e.SubscriptionSID,
		fieldPlanID:          e.PlanID,
		fieldPlanSID:         e.PlanSID,
		fieldPlanName:        e.PlanName,
		fieldZones:           strings.Join(e.Zones, ","),
		fieldStatus:          e.Status,
		fieldPeriodStart:     e.PeriodStart.UTC().Format(time.RFC3339Nano),
		fieldPeriodEnd:       e.PeriodEnd.UTC().Format(time.RFC3339Nano),
		fieldCancelAtEnd:     boolToInt(e.CancelAtPeriodEnd),
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttlWithJitter(c.ttl))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write entitlement cache: %w", err)
	}

	c.logger.Debugw("entitlement cached", "viewer_id", viewerID, "plan", e.PlanSID, "status", e.Status)
	return nil
}

func (c *RedisEntitlementCache) SetNullMarker(ctx context.Context, viewerID string) error {
	key := c.key(viewerID)
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fieldNullMarker, "1")
	pipe.Expire(ctx, key, c.negativeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write entitlement null marker: %w", err)
	}
	return nil
}

func (c *RedisEntitlementCache) Invalidate(ctx context.Context, viewerID string) error {
	if err := c.client.Del(ctx, c.key(viewerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate entitlement cache: %w", err)
	}
	c.logger.Debugw("entitlement cache invalidated", "viewer_id", viewerID)
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
