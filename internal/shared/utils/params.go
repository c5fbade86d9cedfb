package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/shared/errors"
	"github.com/folio-inc/folio/internal/shared/id"
)

// ParseSIDParam reads a prefixed id from the route and validates its shape.
func ParseSIDParam(c *gin.Context, param, prefix, entity string) (string, error) {
	sid := c.Param(param)
	if sid == "" {
		return "", errors.NewValidationError(entity + " id is required")
	}
	if !id.HasPrefix(sid, prefix) {
		return "", errors.NewValidationError("invalid " + entity + " id format, expected " + prefix + "_xxxxx")
	}
	return sid, nil
}

// ParseIntQuery reads an optional positive integer query parameter, applying
// def when absent and clamping to max when max > 0.
func ParseIntQuery(c *gin.Context, key string, def, max int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.NewValidationError(key + " must be a positive integer")
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}
