package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/interfaces/http/handlers"
	"github.com/folio-inc/folio/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for editorial and operator routes.
type AdminRouteConfig struct {
	ReleaseHandler       *handlers.ReleaseHandler
	EntitlementHandler   *handlers.EntitlementHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures release scheduling and entitlement refresh.
// Casbin policies decide which roles reach each route.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.PermissionMiddleware.RequirePermission())
	{
		admin.POST("/content/release/batch", cfg.ReleaseHandler.ScheduleReleaseBatch)
		admin.PUT("/content/:id/release", cfg.ReleaseHandler.ScheduleRelease)

		admin.GET("/releases/scheduled", cfg.ReleaseHandler.GetScheduled)
		admin.POST("/releases/sweep", cfg.ReleaseHandler.RunSweep)

		admin.POST("/viewers/:id/entitlement/refresh", cfg.EntitlementHandler.Refresh)
	}
}
