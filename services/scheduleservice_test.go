package services

import (
	"context"
	"testing"

	"exale/store"
)

func TestScheduleDeadlineRules(t *testing.T) {
	ctx := context.Background()
	sc := NewScheduleService(store.NewMemoryStore())

	_, err := sc.Create(ctx, agentSession, "Launch", "2026-04-01", true)
	expectKind(t, err, ErrForbidden, "Only Owners/Admins can create protected deadlines.")

	deadline, err := sc.Create(ctx, adminSession, "Launch", "2026-04-01", true)
	if err != nil {
		t.Fatalf("create deadline: %v", err)
	}
	meeting, err := sc.Create(ctx, agentSession, "Standup", "2026-04-02", false)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	expectKind(t, sc.Move(ctx, agentSession, deadline.ID, "2026-04-05", ""), ErrForbidden, "This is a deadline and cannot be moved.")
	expectKind(t, sc.Resize(ctx, agentSession, deadline.ID, "2026-04-06"), ErrForbidden, "Deadlines cannot be resized.")
	expectKind(t, sc.Retitle(ctx, agentSession, deadline.ID, "Later"), ErrForbidden, "This event is a protected deadline and cannot be edited.")

	if err := sc.Move(ctx, ownerSession, deadline.ID, "2026-04-05", ""); err != nil {
		t.Fatalf("owner move: %v", err)
	}
	moved, _ := sc.Get(ctx, deadline.ID)
	if moved.Start != "2026-04-05" || moved.End != "2026-04-05" {
		t.Fatalf("move without end should collapse to one day, got %+v", moved)
	}

	if err := sc.Resize(ctx, agentSession, meeting.ID, "2026-04-04"); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if err := sc.Retitle(ctx, agentSession, meeting.ID, "Weekly sync"); err != nil {
		t.Fatalf("retitle: %v", err)
	}
	got, _ := sc.Get(ctx, meeting.ID)
	if got.Title != "Weekly sync" || got.End != "2026-04-04" {
		t.Fatalf("unexpected event: %+v", got)
	}

	expectKind(t, sc.Move(ctx, agentSession, meeting.ID, "tomorrow", ""), ErrInvalid, "")
	expectKind(t, sc.Move(ctx, agentSession, "missing", "2026-04-01", ""), ErrNotFound, "Event not found")
	expectKind(t, sc.Move(ctx, guestSession, meeting.ID, "2026-04-01", ""), ErrUnauthenticated, "")
}

func TestScheduleScopes(t *testing.T) {
	ctx := context.Background()
	sc := NewScheduleService(store.NewMemoryStore())
	if _, err := sc.Create(ctx, agentSession, "Mine", "2026-04-02", false); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := sc.Create(ctx, adminSession, "Theirs", "2026-04-03T09:00:00Z", false); err != nil {
		t.Fatalf("create: %v", err)
	}

	mine, _ := sc.List(ctx, agentSession, ParseScope("mine"))
	if len(mine) != 1 || mine[0].Title != "Mine" {
		t.Fatalf("unexpected mine scope: %+v", mine)
	}
	all, _ := sc.List(ctx, agentSession, ParseScope("ALL"))
	if len(all) != 2 {
		t.Fatalf("expected 2 events in all scope, got %d", len(all))
	}
	if guest, _ := sc.List(ctx, guestSession, ScopeMine); len(guest) != 0 {
		t.Fatalf("guest should own no events, got %+v", guest)
	}
	if ParseScope("bogus") != ScopeMine {
		t.Fatal("unknown scope should default to mine")
	}
}
