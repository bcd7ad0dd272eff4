package domain

import (
	"fmt"
)

// Role is the closed set of account roles.
type Role string

const (
	// RoleAdmin manages accounts and onboarding.
	RoleAdmin Role = "admin"
	// RoleModerator supervises pilgrim groups.
	RoleModerator Role = "moderator"
	// RolePilgrim is the default role of onboarded pilgrims.
	RolePilgrim Role = "pilgrim"
	// RoleDoctor reads and records medical data.
	RoleDoctor Role = "doctor"
)

var allRoles = []Role{RoleAdmin, RoleModerator, RolePilgrim, RoleDoctor}

// AllRoles returns every known role.
func AllRoles() []Role {
	roles := make([]Role, len(allRoles))
	copy(roles, allRoles)
	return roles
}

// IsValid reports whether r is a member of the role set. Matching is case-sensitive.
func (r Role) IsValid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts s into a Role, rejecting values outside the set.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return role, nil
}
