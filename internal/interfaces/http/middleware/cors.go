package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/shared/constants"
)

// CORS allows the configured origins. An empty list disables cross origin
// access entirely.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	if len(allowedOrigins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderAuthorization, constants.HeaderXRequestID},
		ExposeHeaders:    []string{"Content-Length", constants.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
