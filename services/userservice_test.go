package services

import (
	"context"
	"testing"
	"time"

	"exale/model"
	"exale/store"
)

func TestResolveRole(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	users := NewUserService(st)

	_ = st.Set(ctx, CollectionUsers, "u1", map[string]interface{}{"role": "admin"})
	_ = st.Set(ctx, CollectionUsers, "u2", map[string]interface{}{"role": "superuser"})
	_ = st.Set(ctx, CollectionUsers, "u3", map[string]interface{}{"role": "Guest"})

	cases := map[string]model.Role{
		"":        model.RoleGuest,
		"u1":      model.RoleAdmin,
		"u2":      model.RoleAgent,
		"u3":      model.RoleGuest,
		"missing": model.RoleAgent,
	}
	for uid, want := range cases {
		if got := users.ResolveRole(ctx, uid); got != want {
			t.Errorf("uid %q: expected %s, got %s", uid, want, got)
		}
	}
}

func TestUserManagementIsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(store.NewMemoryStore())

	_, err := users.Create(ctx, adminSession, "Dan", "dan@exale.net", "agent")
	expectKind(t, err, ErrForbidden, "Only Owner can create users")
	_, err = users.Create(ctx, ownerSession, "", "dan@exale.net", "agent")
	expectKind(t, err, ErrInvalid, "Name and email required")

	id, err := users.Create(ctx, ownerSession, "Dan", "dan@exale.net", "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = users.Create(ctx, ownerSession, "Dan Again", "dan@exale.net", "agent")
	expectKind(t, err, ErrInvalid, "Email is already registered")

	expectKind(t, users.ChangeRole(ctx, agentSession, id, "owner"), ErrForbidden, "Only Owner can change roles.")
	if err := users.ChangeRole(ctx, ownerSession, id, "Admin"); err != nil {
		t.Fatalf("change role: %v", err)
	}
	if got := users.ResolveRole(ctx, id); got != model.RoleAdmin {
		t.Fatalf("expected admin after role change, got %s", got)
	}
	expectKind(t, users.ChangeRole(ctx, ownerSession, "missing", "agent"), ErrNotFound, "User not found")

	if err := users.Delete(ctx, ownerSession, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no users left, got %+v", list)
	}
}

func TestSeedUsers(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(store.NewMemoryStore())
	if _, err := users.Seed(ctx, adminSession); err == nil {
		t.Fatal("admins must not seed users")
	}
	n, err := users.Seed(ctx, ownerSession)
	if err != nil || n != 3 {
		t.Fatalf("seed: n=%d err=%v", n, err)
	}
	list, _ := users.List(ctx)
	roles := map[model.Role]bool{}
	for _, u := range list {
		roles[u.Role] = true
	}
	if !roles[model.RoleOwner] || !roles[model.RoleAdmin] || !roles[model.RoleAgent] {
		t.Fatalf("expected one user per role, got %+v", list)
	}
}

func TestSetActivityEchoesAndPersists(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	users := NewUserService(st)
	_ = st.Set(ctx, CollectionUsers, agentSession.UserID, map[string]interface{}{"name": "Cathy", "role": "agent"})

	got, err := users.SetActivity(ctx, agentSession, " In a meeting ")
	if err != nil || got != "In a meeting" {
		t.Fatalf("set activity: %q %v", got, err)
	}
	if users.Activity(ctx, agentSession.UserID) != "In a meeting" {
		t.Fatal("activity not echoed from cache")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		u, err := users.Get(ctx, agentSession.UserID)
		if err == nil && u.Activity == "In a meeting" {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("activity never persisted: %+v %v", u, err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestSetActivityWithoutRecordStillEchoes(t *testing.T) {
	users := NewUserService(store.NewMemoryStore())
	got, err := users.SetActivity(context.Background(), agentSession, "Available")
	if err != nil || got != "Available" {
		t.Fatalf("expected echo despite missing record, got %q %v", got, err)
	}
	_, err = users.SetActivity(context.Background(), agentSession, "")
	expectKind(t, err, ErrInvalid, "")
}
