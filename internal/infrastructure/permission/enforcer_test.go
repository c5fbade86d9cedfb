package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/logger"
)

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e, err := NewEnforcer(nil, logger.NewNopLogger())
	require.NoError(t, err)

	tests := []struct {
		role, path, method string
		allowed            bool
	}{
		{"editor", "/admin/content/ct_abc/release", "PUT", true},
		{"editor", "/admin/content/release/batch", "POST", true},
		{"editor", "/admin/releases/scheduled", "GET", true},
		{"editor", "/admin/releases/sweep", "POST", false},
		{"admin", "/admin/releases/sweep", "POST", true},
		{"admin", "/admin/content/ct_abc/release", "PUT", true},
		{"admin", "/admin/viewers/vw_abc/entitlement/refresh", "POST", true},
		{"viewer", "/admin/content/ct_abc/release", "PUT", false},
		{"editor", "/admin/content/ct_abc/release", "DELETE", false},
	}
	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			allowed, err := e.Enforce(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestEnforcer_ConfiguredPolicies(t *testing.T) {
	e, err := NewEnforcer([]config.PolicyRule{
		{Role: "viewer", Path: "/admin/releases/*", Method: "*"},
	}, logger.NewNopLogger())
	require.NoError(t, err)

	allowed, err := e.Enforce("viewer", "/admin/releases/scheduled", "GET")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = e.Enforce("editor", "/admin/releases/scheduled", "GET")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, e.AddPolicy("editor", "/admin/releases/scheduled", "GET"))
	allowed, err = e.Enforce("admin", "/admin/releases/scheduled", "GET")
	require.NoError(t, err)
	assert.True(t, allowed, "admin inherits editor")
}

func TestEnforcer_RejectsIncompleteRule(t *testing.T) {
	_, err := NewEnforcer([]config.PolicyRule{{Role: "editor"}}, logger.NewNopLogger())
	assert.Error(t, err)
}
