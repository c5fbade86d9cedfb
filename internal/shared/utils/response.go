package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-inc/folio/internal/shared/errors"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: "error", Message: message},
	})
}

// ErrorResponseWithError renders err using its AppError type when present.
// Binding failures become validation errors; anything else is reported as an
// opaque internal error.
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		appErr = FromBindingError(err)
	}
	if appErr == nil {
		appErr = errors.NewInternalError("Internal server error occurred")
	}

	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// AbortWithError renders err and stops the middleware chain.
func AbortWithError(c *gin.Context, err error) {
	ErrorResponseWithError(c, err)
	c.Abort()
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
