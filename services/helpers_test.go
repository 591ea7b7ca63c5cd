package services

import (
	"errors"
	"testing"

	"exale/model"
)

var (
	ownerSession = model.Session{UserID: "u-owner", Email: "alice@exale.net", Name: "Alice", Role: model.RoleOwner}
	adminSession = model.Session{UserID: "u-admin", Email: "bob@exale.net", Name: "Bob", Role: model.RoleAdmin}
	agentSession = model.Session{UserID: "u-agent", Email: "cathy@exale.net", Name: "Cathy", Role: model.RoleAgent}
	guestSession = model.GuestSession()
)

func expectKind(t *testing.T, err, kind error, msg string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	if msg != "" && err.Error() != msg {
		t.Fatalf("expected message %q, got %q", msg, err.Error())
	}
}
