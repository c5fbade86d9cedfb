// Package permission guards admin routes with casbin role policies.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/folio-inc/folio/internal/shared/authorization"
	"github.com/folio-inc/folio/internal/shared/config"
	"github.com/folio-inc/folio/internal/shared/logger"
)

// rbacModel: roles inherit through g, paths use keyMatch2 (":id" and "*").
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// DefaultPolicies apply when the configuration lists none.
var DefaultPolicies = []config.PolicyRule{
	{Role: authorization.RoleEditor.String(), Path: "/admin/content/:id/release", Method: "PUT"},
	{Role: authorization.RoleEditor.String(), Path: "/admin/content/release/batch", Method: "POST"},
	{Role: authorization.RoleEditor.String(), Path: "/admin/releases/scheduled", Method: "GET"},
	{Role: authorization.RoleAdmin.String(), Path: "/admin/releases/sweep", Method: "POST"},
	{Role: authorization.RoleAdmin.String(), Path: "/admin/viewers/:id/entitlement/refresh", Method: "POST"},
}

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds an in-memory enforcer. Admin inherits every editor
// permission.
func NewEnforcer(policies []config.PolicyRule, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if len(policies) == 0 {
		policies = DefaultPolicies
	}
	rules := make([][]string, 0, len(policies))
	for _, p := range policies {
		if p.Role == "" || p.Path == "" || p.Method == "" {
			return nil, fmt.Errorf("incomplete policy rule: %+v", p)
		}
		rules = append(rules, []string{p.Role, p.Path, p.Method})
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("failed to load policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(authorization.RoleAdmin.String(), authorization.RoleEditor.String()); err != nil {
		return nil, fmt.Errorf("failed to load role hierarchy: %w", err)
	}

	log.Infow("permission policies loaded", "count", len(rules))
	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

func (e *Enforcer) Enforce(role, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

func (e *Enforcer) AddPolicy(role, resource, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, resource, action); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}
