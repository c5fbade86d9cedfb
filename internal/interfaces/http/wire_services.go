package http

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	accessServices "github.com/folio-inc/folio/internal/application/access/services"
	"github.com/folio-inc/folio/internal/domain/access"
	"github.com/folio-inc/folio/internal/infrastructure/auth"
	"github.com/folio-inc/folio/internal/infrastructure/cache"
	"github.com/folio-inc/folio/internal/infrastructure/permission"
	"github.com/folio-inc/folio/internal/infrastructure/scheduler"
	"github.com/folio-inc/folio/internal/interfaces/http/middleware"
)

// ============================================================
// Section 1: Infrastructure - caches, resolver, auth, repositories
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.repos = newRepositories(c.db, log)

	var client redis.Cmdable
	if c.redis != nil {
		client = c.redis
		c.interestStore = cache.NewZoneInterestStore(c.redis, log.Named("zone-interest"))
	}

	entitlementCache, err := cache.NewEntitlementCache(cfg.Access.Cache, client, log.Named("entitlement-cache"))
	if err != nil {
		return fmt.Errorf("failed to create entitlement cache: %w", err)
	}
	c.entitlementCache = entitlementCache

	c.resolver = accessServices.NewSubscriptionResolver(
		c.repos.subscriptionRepo, c.entitlementCache, cfg.Access.ResolverTimeout, log.Named("resolver"),
	)
	c.evaluator = access.NewEvaluator(access.Policy{
		DefaultPreviewLength: cfg.Access.DefaultPreviewLength,
		UpgradeURL:           cfg.Access.UpgradeURL,
	})

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes, c.clock)

	enforcer, err := permission.NewEnforcer(cfg.Authorization.Policies, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)

	return nil
}

// ============================================================
// Section 4: Release sweep job
// ============================================================

// initScheduler registers the sweep but does not start it; the server and
// worker commands decide whether this process runs jobs.
func (c *Container) initScheduler() error {
	if !c.cfg.Release.SweepEnabled {
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := manager.RegisterReleaseSweep(c.ucs.processDueReleasesUC, c.cfg.Release.SweepInterval, 0); err != nil {
		return fmt.Errorf("failed to register release sweep: %w", err)
	}
	c.schedulerManager = manager
	return nil
}
