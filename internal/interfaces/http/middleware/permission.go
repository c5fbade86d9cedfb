package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

// PolicyEnforcer decides whether a role may call a route.
type PolicyEnforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission checks the caller's role against the matched route
// template and method. It must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewerID := ViewerID(c)
		if viewerID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		role := ViewerRole(c)
		resource := c.FullPath()
		allowed, err := m.enforcer.Enforce(role.String(), resource, c.Request.Method)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied",
				"viewer_id", viewerID,
				"role", role,
				"resource", resource,
				"action", c.Request.Method,
			)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
