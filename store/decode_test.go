package store

import (
	"testing"
	"time"
)

type decodeComment struct {
	Author    string `firestore:"author"`
	Text      string `firestore:"text"`
	Timestamp int64  `firestore:"timestamp"`
}

type decodeTask struct {
	ID        string          `firestore:"-"`
	Title     string          `firestore:"title,omitempty"`
	Priority  int             `firestore:"priority"`
	CreatedAt time.Time       `firestore:"createdAt"`
	Comments  []decodeComment `firestore:"comments"`
}

func TestDecodeTaggedStruct(t *testing.T) {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := Doc{ID: "abc", Data: map[string]interface{}{
		"title":     "Design partner page",
		"priority":  int64(70),
		"createdAt": created,
		"comments": []interface{}{
			map[string]interface{}{"author": "Cathy", "text": "on it", "timestamp": int64(5)},
		},
		"unknown": "ignored",
	}}

	var task decodeTask
	if err := Decode(doc, &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.Title != "Design partner page" || task.Priority != 70 {
		t.Fatalf("unexpected task: %+v", task)
	}
	if !task.CreatedAt.Equal(created) {
		t.Fatalf("expected createdAt %v, got %v", created, task.CreatedAt)
	}
	if len(task.Comments) != 1 || task.Comments[0].Author != "Cathy" {
		t.Fatalf("unexpected comments: %+v", task.Comments)
	}
	if task.ID != "" {
		t.Fatalf("id must come from the document key, not the data")
	}
}

func TestDecodeUnixMillisAsTime(t *testing.T) {
	var task decodeTask
	if err := Decode(Doc{ID: "x", Data: map[string]interface{}{"createdAt": int64(1700000000000)}}, &task); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if task.CreatedAt.UnixMilli() != 1700000000000 {
		t.Fatalf("expected millis to convert, got %v", task.CreatedAt)
	}
}
