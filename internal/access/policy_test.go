package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studenthive/portal/internal/access"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want access.Role
	}{
		{"general user", "ROLE_GENERAL_USER", access.RoleGeneralUser},
		{"student", "ROLE_STUDENT", access.RoleStudent},
		{"admin", "ROLE_ADMIN", access.RoleAdmin},
		{"empty", "", access.RoleUnknown},
		{"unknown value", "ROLE_SUPERUSER", access.RoleUnknown},
		{"case sensitive", "role_admin", access.RoleUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.ParseRole(tt.in))
		})
	}
}

func TestCanAccess(t *testing.T) {
	all := []access.Role{access.RoleGeneralUser, access.RoleStudent, access.RoleAdmin}
	adminOnly := []access.Role{access.RoleAdmin}

	tests := []struct {
		name     string
		role     access.Role
		required []access.Role
		want     bool
	}{
		{"member of full set", access.RoleStudent, all, true},
		{"admin in admin-only", access.RoleAdmin, adminOnly, true},
		{"student not in admin-only", access.RoleStudent, adminOnly, false},
		{"general user not in admin-only", access.RoleGeneralUser, adminOnly, false},
		{"unknown role never matches", access.RoleUnknown, all, false},
		{"unparsed role never matches", access.ParseRole("ROLE_HACKER"), all, false},
		{"empty required set matches nothing", access.RoleAdmin, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.CanAccess(tt.role, tt.required))
		})
	}
}

func TestIsStudentOrAdmin(t *testing.T) {
	assert.True(t, access.IsStudentOrAdmin(access.RoleStudent))
	assert.True(t, access.IsStudentOrAdmin(access.RoleAdmin))
	assert.False(t, access.IsStudentOrAdmin(access.RoleGeneralUser))
	assert.False(t, access.IsStudentOrAdmin(access.RoleUnknown))
}
