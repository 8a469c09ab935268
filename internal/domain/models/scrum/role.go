package scrum

import (
	"fmt"
	"strings"
)

// Role is a member's privilege level within one project.
// The numeric order is only meaningful for None < Observer < Developer;
// ScrumMaster and Owner hold distinct powers and are not compared by value.
type Role int

const (
	RoleNone Role = iota
	RoleObserver
	RoleDeveloper
	RoleScrumMaster
	RoleOwner
)

var roleNames = map[Role]string{
	RoleNone:        "none",
	RoleObserver:    "observer",
	RoleDeveloper:   "developer",
	RoleScrumMaster: "scrum_master",
	RoleOwner:       "owner",
}

// String returns the wire name of the role
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Valid reports whether r is one of the five defined roles
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole parses a wire name into a Role
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return RoleNone, fmt.Errorf("unknown role %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}
