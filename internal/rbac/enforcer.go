package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role names as they appear in JWT claims.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

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
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// rolePolicies is the static permission matrix. Roles inherit downward:
// ADMIN > MANAGER > EMPLOYEE.
var rolePolicies = [][]string{
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "attendance", "create"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "employee", "read"},
	{RoleEmployee, "department", "read"},

	{RoleManager, "leave", "approve"},
	{RoleManager, "attendance", "manage"},
	{RoleManager, "notification", "read"},

	{RoleAdmin, "employee", "manage"},
	{RoleAdmin, "department", "manage"},
	{RoleAdmin, "notification", "manage"},
}

var roleInheritance = [][]string{
	{RoleAdmin, RoleManager},
	{RoleManager, RoleEmployee},
}

// Enforcer wraps a casbin enforcer loaded with the static policy matrix.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("build enforcer: %w", err)
	}

	for _, p := range rolePolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}
	for _, g := range roleInheritance {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("add role inheritance %v: %w", g, err)
		}
	}

	return &Enforcer{enforcer: e}, nil
}

// Can reports whether the given role may perform act on obj.
func (e *Enforcer) Can(role, obj, act string) (bool, error) {
	return e.enforcer.Enforce(role, obj, act)
}
