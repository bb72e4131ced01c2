package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role       Role
		isAdmin    bool
		isManager  bool
		canReserve bool
	}{
		{RoleGuest, false, false, false},
		{RoleMember, false, false, true},
		{RoleManager, false, true, true},
		{RoleAdmin, true, true, true},
		{Role(""), false, false, false},
		{Role("superuser"), false, false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			assert.Equal(t, tc.isAdmin, tc.role.IsAdmin())
			assert.Equal(t, tc.isManager, tc.role.IsManager())
			assert.Equal(t, tc.canReserve, tc.role.CanReserve())
		})
	}
}

func TestRedirectPathIsTotal(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RoleAdmin.RedirectPath())
	assert.Equal(t, "/manager/dashboard", RoleManager.RedirectPath())
	assert.Equal(t, "/member/home", RoleMember.RedirectPath())

	// anything outside the known roles lands on the guest page
	for _, role := range []Role{RoleGuest, Role(""), Role("unknown"), Role("ADMIN")} {
		assert.Equal(t, "/welcome", role.RedirectPath())
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleGuest, RoleMember, RoleManager, RoleAdmin} {
		assert.True(t, role.Valid())
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("root").Valid())
}
