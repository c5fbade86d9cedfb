package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/interfaces/http/handlers"
	"github.com/folio-inc/folio/internal/interfaces/http/middleware"
)

// AccessRouteConfig holds dependencies for viewer facing routes.
type AccessRouteConfig struct {
	AccessHandler  *handlers.AccessHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAccessRoutes configures access checks, previews and recommendations.
func SetupAccessRoutes(engine *gin.Engine, cfg *AccessRouteConfig) {
	content := engine.Group("/content")
	content.Use(cfg.AuthMiddleware.OptionalAuth())
	{
		// static segment before /:id
		content.POST("/access/bulk", cfg.AccessHandler.CheckAccessBulk)

		content.GET("/:id/access", cfg.AccessHandler.CheckAccess)
		content.GET("/:id/preview", cfg.AccessHandler.GetPreview)
	}

	recommendations := engine.Group("/recommendations")
	recommendations.Use(cfg.AuthMiddleware.RequireAuth())
	{
		recommendations.GET("/upgrades", cfg.AccessHandler.GetRecommendations)
	}
}
