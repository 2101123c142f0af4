package rbac_test

import (
	"testing"

	"go-hrms/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnforcer_RoleMatrix(t *testing.T) {
	enforcer, err := rbac.NewEnforcer()
	require.NoError(t, err)

	cases := []struct {
		name    string
		role    string
		obj     string
		act     string
		allowed bool
	}{
		{"employee can read own attendance", rbac.RoleEmployee, "attendance", "read", true},
		{"employee can check in", rbac.RoleEmployee, "attendance", "create", true},
		{"employee can request leave", rbac.RoleEmployee, "leave", "create", true},
		{"employee cannot approve leave", rbac.RoleEmployee, "leave", "approve", false},
		{"employee cannot manage employees", rbac.RoleEmployee, "employee", "manage", false},
		{"employee cannot read notifications", rbac.RoleEmployee, "notification", "read", false},

		{"manager can approve leave", rbac.RoleManager, "leave", "approve", true},
		{"manager can correct attendance", rbac.RoleManager, "attendance", "manage", true},
		{"manager inherits employee reads", rbac.RoleManager, "department", "read", true},
		{"manager cannot manage departments", rbac.RoleManager, "department", "manage", false},

		{"admin can manage employees", rbac.RoleAdmin, "employee", "manage", true},
		{"admin can manage notifications", rbac.RoleAdmin, "notification", "manage", true},
		{"admin inherits manager approvals", rbac.RoleAdmin, "leave", "approve", true},
		{"admin inherits employee reads", rbac.RoleAdmin, "attendance", "read", true},

		{"unknown role gets nothing", "CONTRACTOR", "attendance", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := enforcer.Can(tc.role, tc.obj, tc.act)
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
