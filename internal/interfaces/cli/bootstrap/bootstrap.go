// Package bootstrap holds the start-up sequence shared by the CLI commands.
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/folio-inc/folio/internal/infrastructure/cache"
	"github.com/folio-inc/folio/internal/infrastructure/config"
	"github.com/folio-inc/folio/internal/infrastructure/database"
	sharedConfig "github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// Options are the persistent flags every command accepts.
type Options struct {
	Env        string
	ConfigPath string
	Verbose    bool
}

// ResolveEnv lets the ENV variable override the --env flag.
func (o *Options) ResolveEnv() string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		o.Env = envVar
	}
	return o.Env
}

// Runtime is an initialised process: config, logger, database and an
// optional Redis client.
type Runtime struct {
	Config *config.Config
	Log    logger.Interface
	DB     *gorm.DB
	Redis  *redis.Client
}

// Init loads config and the logger only.
func Init(opts *Options) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(opts.ResolveEnv(), opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, opts.Verbose); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

// Start runs Init, opens the database and dials Redis when the entitlement
// cache needs it.
func Start(ctx context.Context, opts *Options) (*Runtime, error) {
	cfg, log, err := Init(opts)
	if err != nil {
		return nil, err
	}

	if err := database.Init(ctx, &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rt := &Runtime{Config: cfg, Log: log, DB: database.Get()}

	if cfg.Access.Cache.Backend == sharedConfig.CacheBackendRedis {
		client, err := cache.NewRedisClient(ctx, &cfg.Redis, log)
		if err != nil {
			_ = database.Close()
			return nil, err
		}
		rt.Redis = client
	}
	return rt, nil
}

// Close releases the database and Redis connections.
func (r *Runtime) Close() {
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			r.Log.Warnw("failed to close redis client", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
}

// GinMode maps an environment name to a gin mode.
func GinMode(env string) string {
	switch env {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
