package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/infrastructure/auth"
	"github.com/folio-inc/folio/internal/shared/authorization"
	"github.com/folio-inc/folio/internal/shared/constants"
	"github.com/folio-inc/folio/internal/shared/logger"
	"github.com/folio-inc/folio/internal/shared/utils"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing or malformed authorization token")
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		setViewer(c, claims)
		c.Next()
	}
}

// OptionalAuth identifies the viewer when a valid token is present and
// otherwise lets the request through as anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			m.logger.Debugw("ignoring invalid token on public route", "error", err)
			c.Next()
			return
		}

		setViewer(c, claims)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setViewer(c *gin.Context, claims *auth.Claims) {
	c.Set(constants.ContextKeyUserID, claims.ViewerID())
	c.Set(constants.ContextKeyUserRole, string(claims.Role))
}

// ViewerID returns the authenticated viewer SID or "" for anonymous requests.
func ViewerID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}

// ViewerRole returns the caller's role, defaulting to viewer.
func ViewerRole(c *gin.Context) authorization.UserRole {
	return authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
}
