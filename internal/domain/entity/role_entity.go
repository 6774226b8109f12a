package entity

import (
	"slices"
	"strings"
)

// Role is a value from the closed set of roles a user can hold.
// A user's roles are owned by the user and have no identity of their own.
type Role string

const (
	RoleUser       Role = "User"
	RoleAdmin      Role = "Admin"
	RoleSupport    Role = "Support"
	RoleSuperAdmin Role = "SuperAdmin"
)

// AllRoles lists every valid role in declaration order
var AllRoles = []Role{RoleUser, RoleAdmin, RoleSupport, RoleSuperAdmin}

// Valid reports whether r belongs to the role enumeration
func (r Role) Valid() bool {
	return slices.Contains(AllRoles, r)
}

func (r Role) String() string { return string(r) }

// ParseRole resolves a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range AllRoles {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}
