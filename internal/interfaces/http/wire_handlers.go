package http

import (
	"context"

	"github.com/folio-inc/folio/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	accessHandler      *handlers.AccessHandler
	releaseHandler     *handlers.ReleaseHandler
	entitlementHandler *handlers.EntitlementHandler
	healthHandler      *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	checks := map[string]handlers.Pinger{
		"database": handlers.PingerFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if c.redis != nil {
		checks["redis"] = handlers.PingerFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}

	c.hdlrs = &allHandlers{
		accessHandler: handlers.NewAccessHandler(
			ucs.checkAccessUC, ucs.checkAccessBulkUC, ucs.getPreviewUC, ucs.getRecommendationsUC, log,
		),
		releaseHandler: handlers.NewReleaseHandler(
			ucs.scheduleReleaseUC, ucs.scheduleReleaseBatchUC, ucs.processDueReleasesUC, ucs.getScheduledContentUC, log,
		),
		entitlementHandler: handlers.NewEntitlementHandler(ucs.refreshEntitlementUC, log),
		healthHandler:      handlers.NewHealthHandler(checks),
	}
}
