package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/folio-inc/folio/internal/domain/subscription"
	"github.com/folio-inc/folio/internal/infrastructure/cache"
	"github.com/folio-inc/folio/internal/infrastructure/metrics"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// DefaultResolveTimeout bounds a single store lookup.
const DefaultResolveTimeout = 500 * time.Millisecond

// SubscriptionResolver maps a viewer to their current subscription. It owns
// the entitlement cache and collapses concurrent lookups for one viewer.
type SubscriptionResolver struct {
	repo    subscription.Repository
	cache   cache.EntitlementCache
	timeout time.Duration
	group   singleflight.Group
	logger  logger.Interface
}

func NewSubscriptionResolver(
	repo subscription.Repository,
	entitlementCache cache.EntitlementCache,
	timeout time.Duration,
	logger logger.Interface,
) *SubscriptionResolver {
	if timeout <= 0 {
		timeout = DefaultResolveTimeout
	}
	return &SubscriptionResolver{
		repo:    repo,
		cache:   entitlementCache,
		timeout: timeout,
		logger:  logger,
	}
}

// Resolve returns (nil, nil) for anonymous viewers and viewers without a
// subscription. Errors mean the answer is unknown; callers must treat them
// as no entitlement.
func (r *SubscriptionResolver) Resolve(ctx context.Context, viewerID string) (*subscription.Subscription, error) {
	if viewerID == "" {
		return nil, nil
	}
	start := time.Now()
	defer func() { metrics.EntitlementResolveDuration.Observe(time.Since(start).Seconds()) }()

	if sub, ok := r.fromCache(ctx, viewerID); ok {
		metrics.EntitlementLookups.WithLabelValues(metrics.SourceCache).Inc()
		return sub, nil
	}

	ch := r.group.DoChan(viewerID, func() (interface{}, error) {
		// shared by every waiter, so detach from any single caller's cancellation
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.load(loadCtx, viewerID)
	})

	select {
	case <-ctx.Done():
		metrics.EntitlementLookups.WithLabelValues(metrics.SourceError).Inc()
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			metrics.EntitlementLookups.WithLabelValues(metrics.SourceError).Inc()
			return nil, res.Err
		}
		metrics.EntitlementLookups.WithLabelValues(metrics.SourceStore).Inc()
		sub, _ := res.Val.(*subscription.Subscription)
		return sub, nil
	}
}

func (r *SubscriptionResolver) fromCache(ctx context.Context, viewerID string) (*subscription.Subscription, bool) {
	if r.cache == nil {
		return nil, false
	}
	entry, err := r.cache.Get(ctx, viewerID)
	if err != nil {
		r.logger.Warnw("entitlement cache read failed, falling back to store", "viewer_id", viewerID, "error", err)
		return nil, false
	}
	if entry == nil {
		return nil, false
	}
	sub, err := entry.ToSubscription(viewerID)
	if err != nil {
		r.logger.Warnw("discarding unreadable entitlement cache entry", "viewer_id", viewerID, "error", err)
		return nil, false
	}
	return sub, true
}

func (r *SubscriptionResolver) load(ctx context.Context, viewerID string) (*subscription.Subscription, error) {
	sub, err := r.repo.GetCurrentByViewer(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subscription for %s: %w", viewerID, err)
	}
	if r.cache == nil {
		return sub, nil
	}

	if sub == nil {
		err = r.cache.SetNullMarker(ctx, viewerID)
	} else {
		err = r.cache.Set(ctx, viewerID, cache.NewCachedEntitlement(sub))
	}
	if err != nil {
		r.logger.Warnw("failed to cache entitlement", "viewer_id", viewerID, "error", err)
	}
	return sub, nil
}

// Invalidate drops the cached entry so the next Resolve reads the store.
func (r *SubscriptionResolver) Invalidate(ctx context.Context, viewerID string) error {
	r.group.Forget(viewerID)
	if r.cache == nil {
		return nil
	}
	return r.cache.Invalidate(ctx, viewerID)
}
