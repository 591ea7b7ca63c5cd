package services

import (
	"context"
	"errors"
	"strings"

	"exale/model"
	"exale/store"
)

type Scope string

const (
	ScopeMine Scope = "mine"
	ScopeAll  Scope = "all"
)

func ParseScope(s string) Scope {
	if Scope(strings.ToLower(strings.TrimSpace(s))) == ScopeAll {
		return ScopeAll
	}
	return ScopeMine
}

type ScheduleService struct {
	store store.Store
}

func NewScheduleService(s store.Store) *ScheduleService {
	return &ScheduleService{store: s}
}

func SchedulesQuery() store.Query {
	return store.Query{Collection: CollectionSchedules}
}

func DecodeEvents(docs []store.Doc) []model.ScheduleEvent {
	return decodeAll(CollectionSchedules, docs, fillEvent)
}

func fillEvent(ev *model.ScheduleEvent, id string) {
	ev.ID = id
	ev.End = ev.EffectiveEnd()
}

// FilterEvents keeps the events visible under scope. "mine" without a
// signed-in user shows nothing.
func FilterEvents(events []model.ScheduleEvent, scope Scope, uid string) []model.ScheduleEvent {
	if scope == ScopeAll {
		return events
	}
	out := make([]model.ScheduleEvent, 0, len(events))
	if uid == "" {
		return out
	}
	for _, ev := range events {
		if ev.OwnerID == uid {
			out = append(out, ev)
		}
	}
	return out
}

func (sc *ScheduleService) List(ctx context.Context, s model.Session, scope Scope) ([]model.ScheduleEvent, error) {
	docs, err := sc.store.Query(ctx, SchedulesQuery())
	if err != nil {
		return nil, err
	}
	return FilterEvents(DecodeEvents(docs), scope, s.UserID), nil
}

func (sc *ScheduleService) Get(ctx context.Context, id string) (model.ScheduleEvent, error) {
	doc, err := sc.store.Get(ctx, CollectionSchedules, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.ScheduleEvent{}, notFound("Event not found")
		}
		return model.ScheduleEvent{}, err
	}
	var ev model.ScheduleEvent
	if err := store.Decode(doc, &ev); err != nil {
		return model.ScheduleEvent{}, err
	}
	fillEvent(&ev, doc.ID)
	return ev, nil
}

// Create adds a single-day event on date. Only owners and admins may mark it
// as a protected deadline.
func (sc *ScheduleService) Create(ctx context.Context, s model.Session, title, date string, isDeadline bool) (model.ScheduleEvent, error) {
	if err := requireSignedIn(s); err != nil {
		return model.ScheduleEvent{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return model.ScheduleEvent{}, invalid("Event title is required")
	}
	if _, err := model.ParseCalendarDate(date); err != nil {
		return model.ScheduleEvent{}, invalid(err.Error())
	}
	if isDeadline && !s.Role.IsManager() {
		return model.ScheduleEvent{}, forbidden("Only Owners/Admins can create protected deadlines.")
	}
	ev := model.ScheduleEvent{Title: title, Start: date, End: date, IsDeadline: isDeadline, OwnerID: s.UserID}
	id, err := sc.store.Add(ctx, CollectionSchedules, map[string]interface{}{
		"title":      ev.Title,
		"start":      ev.Start,
		"end":        ev.End,
		"isDeadline": ev.IsDeadline,
		"ownerId":    ev.OwnerID,
	})
	if err != nil {
		return model.ScheduleEvent{}, err
	}
	ev.ID = id
	return ev, nil
}

func (sc *ScheduleService) Move(ctx context.Context, s model.Session, id, start, end string) error {
	if end == "" {
		end = start
	}
	if err := validDates(start, end); err != nil {
		return err
	}
	return sc.mutate(ctx, s, id, "This is a deadline and cannot be moved.", map[string]interface{}{"start": start, "end": end})
}

func (sc *ScheduleService) Resize(ctx context.Context, s model.Session, id, end string) error {
	if err := validDates(end); err != nil {
		return err
	}
	return sc.mutate(ctx, s, id, "Deadlines cannot be resized.", map[string]interface{}{"end": end})
}

func (sc *ScheduleService) Retitle(ctx context.Context, s model.Session, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return invalid("Event title is required")
	}
	return sc.mutate(ctx, s, id, "This event is a protected deadline and cannot be edited.", map[string]interface{}{"title": title})
}

// mutate applies fields unless the event is a deadline and the caller is not
// an owner or admin.
func (sc *ScheduleService) mutate(ctx context.Context, s model.Session, id, lockedMsg string, fields map[string]interface{}) error {
	if err := requireSignedIn(s); err != nil {
		return err
	}
	ev, err := sc.Get(ctx, id)
	if err != nil {
		return err
	}
	if ev.IsDeadline && !s.Role.IsManager() {
		return forbidden(lockedMsg)
	}
	err = sc.store.Update(ctx, CollectionSchedules, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Event not found")
	}
	return err
}

func validDates(dates ...string) error {
	for _, d := range dates {
		if _, err := model.ParseCalendarDate(d); err != nil {
			return invalid(err.Error())
		}
	}
	return nil
}
