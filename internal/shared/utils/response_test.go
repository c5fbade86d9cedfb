package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-inc/folio/internal/shared/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponseWithError_AppError(t *testing.T) {
	c, w := newContext()

	ErrorResponseWithError(c, fmt.Errorf("wrap: %w", errors.NewNotFoundError("content item not found")))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "not_found", resp.Error.Type)
}

func TestErrorResponseWithError_HidesInternalErrors(t *testing.T) {
	c, w := newContext()

	ErrorResponseWithError(c, fmt.Errorf("dial tcp 10.0.0.3:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.NotContains(t, resp.Error.Message, "10.0.0.3")
}

func TestErrorResponseWithError_BindingError(t *testing.T) {
	type req struct {
		IDs []string `json:"content_ids" validate:"required,min=1"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(JSONTagName)
	err := v.Struct(req{})
	require.Error(t, err)

	c, w := newContext()
	ErrorResponseWithError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Contains(t, resp.Error.Details, "content_ids is required")
}

func TestParseIntQuery(t *testing.T) {
	c, _ := newContext()
	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=500", nil)

	n, err := ParseIntQuery(c, "limit", 20, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	n, err = ParseIntQuery(c, "missing", 20, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=-1", nil)
	_, err = ParseIntQuery(c, "limit", 20, 100)
	assert.True(t, errors.IsValidationError(err))
}
