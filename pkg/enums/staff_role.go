package enums

import (
	"fmt"
	"strings"
)

// StaffRole is the permission level carried in a terminal token.
type StaffRole string

const (
	StaffRoleCashier StaffRole = "cashier"
	StaffRoleManager StaffRole = "manager"
)

var validStaffRoles = []StaffRole{
	StaffRoleCashier,
	StaffRoleManager,
}

// String implements fmt.Stringer.
func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known StaffRole.
func (r StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Allows reports whether r satisfies the required role. Managers can do
// everything a cashier can.
func (r StaffRole) Allows(required StaffRole) bool {
	if r == required {
		return true
	}
	return r == StaffRoleManager && required == StaffRoleCashier
}

// ParseStaffRole converts raw input into a StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validStaffRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
