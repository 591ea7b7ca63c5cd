package model

import "github.com/golang-jwt/jwt/v5"

type AccessClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Session is the signed-in state every handler reads for permission checks.
type Session struct {
	UserID string `json:"uid,omitempty"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

func GuestSession() Session {
	return Session{Name: "Guest", Email: "guest@exale.local", Role: RoleGuest}
}

func (s Session) Author() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}
