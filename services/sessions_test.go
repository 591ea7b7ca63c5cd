package services

import (
	"context"
	"testing"
	"time"

	"exale/model"
	"exale/store"
)

func TestSessionGateResolve(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	_ = st.Set(ctx, CollectionUsers, "u1", map[string]interface{}{"role": "owner"})
	gate := NewSessionGate(NewJWTVerifier("secret"), NewUserService(st))

	guest, err := gate.Resolve(ctx, "")
	if err != nil || guest.Role != model.RoleGuest {
		t.Fatalf("empty token should be a guest, got %+v %v", guest, err)
	}

	token, err := CreateAccessToken("secret", "u1", "alice@exale.net", "", time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	s, err := gate.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.UserID != "u1" || s.Role != model.RoleOwner || s.Name != "alice" {
		t.Fatalf("unexpected session: %+v", s)
	}

	other, _ := CreateAccessToken("other-secret", "u1", "alice@exale.net", "Alice", time.Hour)
	_, err = gate.Resolve(ctx, other)
	expectKind(t, err, ErrUnauthenticated, "")

	expired, _ := CreateAccessToken("secret", "u1", "alice@exale.net", "Alice", -time.Minute)
	_, err = gate.Resolve(ctx, expired)
	expectKind(t, err, ErrUnauthenticated, "")
}

func TestCreateAccessTokenNeedsSecret(t *testing.T) {
	if _, err := CreateAccessToken("", "u1", "a@b.c", "", time.Hour); err == nil {
		t.Fatal("expected error without secret")
	}
}
