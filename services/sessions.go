package services

import (
	"context"
	"strings"

	"exale/model"
)

// SessionGate turns a bearer token into the session every permission check
// reads.
type SessionGate struct {
	verifier TokenVerifier
	users    *UserService
}

func NewSessionGate(verifier TokenVerifier, users *UserService) *SessionGate {
	return &SessionGate{verifier: verifier, users: users}
}

// Resolve returns the guest session for an empty token.
func (g *SessionGate) Resolve(ctx context.Context, token string) (model.Session, error) {
	if strings.TrimSpace(token) == "" {
		return model.GuestSession(), nil
	}
	id, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return model.Session{}, unauthenticated("Token is expired or invalid: " + err.Error())
	}
	name := id.Name
	if name == "" {
		name, _, _ = strings.Cut(id.Email, "@")
	}
	return model.Session{
		UserID: id.UID,
		Email:  id.Email,
		Name:   name,
		Role:   g.users.ResolveRole(ctx, id.UID),
	}, nil
}
