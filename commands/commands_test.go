package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"exale/services"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("EXALE_JWT_SECRET", "cli-secret")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "--uid=u1", "--email=alice@exale.net", "--name=Alice"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	id, err := services.NewJWTVerifier("cli-secret").Verify(context.Background(), strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UID != "u1" || id.Name != "Alice" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestTokenCommandNeedsUID(t *testing.T) {
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"token"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error without --uid")
	}
}

func TestSeedTasksIntoSQLite(t *testing.T) {
	t.Setenv("EXALE_BACKEND", "sqlite")
	t.Setenv("EXALE_SQLITE_PATH", t.TempDir()+"/seed.db")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"seed", "tasks"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Seeded 5 tasks") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
