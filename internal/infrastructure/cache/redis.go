package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// NewRedisClient dials Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}
	log.Infow("redis connection established", "address", cfg.GetAddr())
	return client, nil
}

// NewEntitlementCache builds the backend named in cfg. client may be nil for
// the local backend.
func NewEntitlementCache(cfg config.EntitlementCacheConfig, client redis.Cmdable, log logger.Interface) (EntitlementCache, error) {
	switch cfg.Backend {
	case config.CacheBackendLocal:
		return NewLocalEntitlementCache(cfg.Size, cfg.TTL, cfg.NegativeTTL), nil
	case config.CacheBackendRedis, "":
		if client == nil {
			return nil, fmt.Errorf("redis entitlement cache requires a redis client")
		}
		return NewRedisEntitlementCache(client, cfg.TTL, cfg.NegativeTTL, log), nil
	default:
		return nil, fmt.Errorf("unsupported entitlement cache backend: %s", cfg.Backend)
	}
}
