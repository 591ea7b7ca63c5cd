package model

import (
	"errors"
	"strings"
	"time"
)

type ScheduleEvent struct {
	ID         string `firestore:"-" json:"id"`
	Title      string `firestore:"title" json:"title"`
	Start      string `firestore:"start" json:"start"`
	End        string `firestore:"end,omitempty" json:"end"`
	IsDeadline bool   `firestore:"isDeadline" json:"isDeadline"`
	OwnerID    string `firestore:"ownerId,omitempty" json:"ownerId,omitempty"`
}

// EffectiveEnd treats a missing end as a single-day event.
func (e ScheduleEvent) EffectiveEnd() string {
	if e.End == "" {
		return e.Start
	}
	return e.End
}

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD or RFC 3339")

// ParseCalendarDate accepts the two forms the calendar emits: all-day dates
// and full timestamps.
func ParseCalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
