package enums

import "fmt"

// Role is the account-level role carried in access tokens.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

var validRoles = []Role{
	RoleCustomer,
	RoleVendor,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// RoleOrDefault parses value and falls back to RoleCustomer for anything unknown.
func RoleOrDefault(value string) Role {
	if role, err := ParseRole(value); err == nil {
		return role
	}
	return RoleCustomer
}
