package model

import "strings"

type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
	RoleGuest Role = "guest"
)

// ParseRole accepts the roles that can be assigned to a user record.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleOwner, RoleAdmin, RoleAgent:
		return r, true
	}
	return "", false
}

func (r Role) IsManager() bool {
	return r == RoleOwner || r == RoleAdmin
}

func (r Role) SignedIn() bool {
	return r != "" && r != RoleGuest
}

// Badge is the capitalized role name shown next to the user.
func (r Role) Badge() string {
	s := string(r)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
