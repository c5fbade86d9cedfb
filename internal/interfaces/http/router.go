package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	releaseUsecases "github.com/folio-inc/folio/internal/application/release/usecases"
	"github.com/folio-inc/folio/internal/infrastructure/config"
	"github.com/folio-inc/folio/internal/interfaces/http/handlers"
	"github.com/folio-inc/folio/internal/interfaces/http/middleware"
	"github.com/folio-inc/folio/internal/interfaces/http/routes"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}
	c, err := NewContainer(db, redisClient, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	if r.cfg.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
		r.engine.GET(r.cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.engine.GET("/health", r.hdlrs.healthHandler.HealthCheck)

	routes.SetupAccessRoutes(r.engine, &routes.AccessRouteConfig{
		AccessHandler:  r.hdlrs.accessHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupAdminRoutes(r.engine, &routes.AdminRouteConfig{
		ReleaseHandler:       r.hdlrs.releaseHandler,
		EntitlementHandler:   r.hdlrs.entitlementHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// ReleaseSweep exposes the sweep use case for the CLI.
func (c *Container) ReleaseSweep() *releaseUsecases.ProcessDueReleasesUseCase {
	return c.ucs.processDueReleasesUC
}

// StartScheduler starts the release sweep job when it is enabled.
func (c *Container) StartScheduler() {
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background jobs. The database and Redis connections belong
// to the caller.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil && c.schedulerManager.IsStarted() {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}
}
