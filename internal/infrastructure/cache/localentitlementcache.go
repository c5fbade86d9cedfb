package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type localEntry struct {
	value     *CachedEntitlement
	expiresAt time.Time
}

// LocalEntitlementCache is an in-process bounded LRU for single instance
// deployments. Null markers carry their own shorter deadline.
type LocalEntitlementCache struct {
	lru         *expirable.LRU[string, localEntry]
	negativeTTL time.Duration
	now         func() time.Time
}

func NewLocalEntitlementCache(size int, ttl, negativeTTL time.Duration) *LocalEntitlementCache {
	if size <= 0 {
		size = 10000
	}
	return &LocalEntitlementCache{
		lru:         expirable.NewLRU[string, localEntry](size, nil, ttl),
		negativeTTL: negativeTTL,
		now:         time.Now,
	}
}

func (c *LocalEntitlementCache) Get(_ context.Context, viewerID string) (*CachedEntitlement, error) {
	entry, ok := c.lru.Get(viewerID)
	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.lru.Remove(viewerID)
		return nil, nil
	}
	return entry.value, nil
}

func (c *LocalEntitlementCache) Set(_ context.Context, viewerID string, e *CachedEntitlement) error {
	c.lru.Add(viewerID, localEntry{value: e})
	return nil
}

func (c *LocalEntitlementCache) SetNullMarker(_ context.Context, viewerID string) error {
	c.lru.Add(viewerID, localEntry{
		value:     &CachedEntitlement{NotFound: true},
		expiresAt: c.now().Add(c.negativeTTL),
	})
	return nil
}

func (c *LocalEntitlementCache) Invalidate(_ context.Context, viewerID string) error {
	c.lru.Remove(viewerID)
	return nil
}
