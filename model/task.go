package model

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusInProgress TaskStatus = "inprogress"
	StatusAccepted   TaskStatus = "accepted"
	StatusRejected   TaskStatus = "rejected"
)

// Workflow lists the statuses offered as actions on every task.
var Workflow = []TaskStatus{StatusNew, StatusInProgress, StatusAccepted, StatusRejected}

func ParseStatus(s string) (TaskStatus, bool) {
	st := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range Workflow {
		if st == w {
			return st, true
		}
	}
	return "", false
}

type Comment struct {
	Author    string `firestore:"author" json:"author"`
	Text      string `firestore:"text" json:"text"`
	Timestamp int64  `firestore:"timestamp" json:"timestamp"` // unix ms
}

func (c Comment) Fields() map[string]interface{} {
	return map[string]interface{}{
		"author":    c.Author,
		"text":      c.Text,
		"timestamp": c.Timestamp,
	}
}

type Task struct {
	ID           string     `firestore:"-" json:"id"`
	Title        string     `firestore:"title,omitempty" json:"title"`
	Company      string     `firestore:"company,omitempty" json:"company"`
	Email        string     `firestore:"email,omitempty" json:"email"`
	Phone        string     `firestore:"phone,omitempty" json:"phone,omitempty"`
	Message      string     `firestore:"message,omitempty" json:"message"`
	Priority     int        `firestore:"priority" json:"priority"`
	Status       TaskStatus `firestore:"status,omitempty" json:"status"`
	Assignee     string     `firestore:"assignee,omitempty" json:"assignee,omitempty"`
	SerialNumber string     `firestore:"serialNumber,omitempty" json:"serialNumber,omitempty"`
	Comments     []Comment  `firestore:"comments" json:"comments"`
	CreatedAt    time.Time  `firestore:"createdAt" json:"createdAt"`
}

func (t Task) EffectiveStatus() TaskStatus {
	if t.Status == "" {
		return StatusNew
	}
	return t.Status
}

// Fields is the document written when the task is created.
func (t Task) Fields() map[string]interface{} {
	comments := make([]interface{}, 0, len(t.Comments))
	for _, c := range t.Comments {
		comments = append(comments, c.Fields())
	}
	f := map[string]interface{}{
		"title":     t.Title,
		"company":   t.Company,
		"email":     t.Email,
		"message":   t.Message,
		"priority":  t.Priority,
		"status":    string(t.EffectiveStatus()),
		"comments":  comments,
		"createdAt": t.CreatedAt,
	}
	if t.Phone != "" {
		f["phone"] = t.Phone
	}
	if t.Assignee != "" {
		f["assignee"] = t.Assignee
	}
	if t.SerialNumber != "" {
		f["serialNumber"] = t.SerialNumber
	}
	return f
}
