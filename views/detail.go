package views

import (
	"strings"

	"exale/model"
)

// TaskDetail is the task panel opened from the task list.
type TaskDetail struct {
	ID        string             `json:"id"`
	Serial    string             `json:"serial"`
	Status    string             `json:"status"`
	Title     string             `json:"title"`
	Subtitle  string             `json:"subtitle"`
	Company   string             `json:"company"`
	Contact   string             `json:"contact"`
	Assignee  string             `json:"assignee"`
	Message   string             `json:"message"`
	Priority  int                `json:"priority"`
	Comments  []model.Comment    `json:"comments"`
	Actions   []model.TaskStatus `json:"actions"`
	CanManage bool               `json:"canManage"`
}

func NewTaskDetail(t model.Task, s model.Session) TaskDetail {
	contact := t.Email
	if t.Phone != "" {
		contact += "\n" + t.Phone
	}
	subtitle := t.Email
	if subtitle == "" {
		subtitle = t.Company
	}
	comments := t.Comments
	if comments == nil {
		comments = []model.Comment{}
	}
	return TaskDetail{
		ID:        t.ID,
		Serial:    orDefault(t.SerialNumber, "Generating..."),
		Status:    strings.ToUpper(string(t.EffectiveStatus())),
		Title:     orDefault(t.Title, "Untitled"),
		Subtitle:  subtitle,
		Company:   orDefault(t.Company, "-"),
		Contact:   contact,
		Assignee:  orDefault(t.Assignee, "Unassigned"),
		Message:   t.Message,
		Priority:  t.Priority,
		Comments:  comments,
		Actions:   model.Workflow,
		CanManage: s.Role.IsManager(),
	}
}
