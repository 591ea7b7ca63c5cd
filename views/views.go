// Package views renders the dashboard's live lists. A view pairs a store
// query with a builder that turns a snapshot into a view model; the same
// model is served as JSON and as an HTML fragment over SSE.
package views

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"exale/model"
	"exale/services"
	"exale/store"
)

const (
	Tasks    = "tasks"
	Priority = "priority"
	Clients  = "clients"
	Contacts = "contacts"
	Users    = "users"
	Schedule = "schedule"
)

// Request carries what a view needs beyond the snapshot itself.
type Request struct {
	Session model.Session
	Scope   services.Scope
}

type ViewModel struct {
	View  string      `json:"view"`
	Count int         `json:"count"`
	Empty string      `json:"empty"`
	Items interface{} `json:"items"`

	// tasks still waiting for a serial number
	pending []model.Task
}

type View struct {
	Name  string
	Empty string
	Query func() store.Query
	build func(docs []store.Doc, req Request) (ViewModel, error)
}

// Build runs the view's builder over a snapshot.
func (v View) Build(docs []store.Doc, req Request) (ViewModel, error) {
	vm, err := v.build(docs, req)
	if err != nil {
		return ViewModel{}, err
	}
	vm.View = v.Name
	vm.Empty = v.Empty
	return vm, nil
}

var registry = map[string]View{
	Tasks:    {Name: Tasks, Empty: "No tasks.", Query: services.TasksQuery, build: buildTasks},
	Priority: {Name: Priority, Empty: "No priority tasks.", Query: services.PriorityQuery, build: buildPriority},
	Clients:  {Name: Clients, Empty: "No active partners found.", Query: services.ClientsQuery, build: buildClients},
	Contacts: {Name: Contacts, Empty: "No contacts added.", Query: services.ContactsQuery, build: buildContacts},
	Users:    {Name: Users, Empty: "No users.", Query: services.UsersQuery, build: buildUsers},
	Schedule: {Name: Schedule, Empty: "No events.", Query: services.SchedulesQuery, build: buildSchedule},
}

// Names lists every registered view.
var Names = []string{Tasks, Priority, Clients, Contacts, Users, Schedule}

func Lookup(name string) (View, bool) {
	v, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

type TaskCard struct {
	ID       string           `json:"id"`
	Serial   string           `json:"serial"`
	Title    string           `json:"title"`
	Company  string           `json:"company"`
	Status   model.TaskStatus `json:"status"`
	Priority int              `json:"priority"`
	Assignee string           `json:"assignee,omitempty"`
}

func newTaskCard(t model.Task) TaskCard {
	return TaskCard{
		ID:       t.ID,
		Serial:   orDefault(t.SerialNumber, "Generating..."),
		Title:    orDefault(t.Title, "Untitled"),
		Company:  t.Company,
		Status:   t.EffectiveStatus(),
		Priority: t.Priority,
		Assignee: t.Assignee,
	}
}

func buildTasks(docs []store.Doc, _ Request) (ViewModel, error) {
	tasks := services.DecodeTasks(docs)
	cards := make([]TaskCard, 0, len(tasks))
	var pending []model.Task
	for _, t := range tasks {
		cards = append(cards, newTaskCard(t))
		if t.SerialNumber == "" {
			pending = append(pending, t)
		}
	}
	return ViewModel{Count: len(cards), Items: cards, pending: pending}, nil
}

func buildPriority(docs []store.Doc, _ Request) (ViewModel, error) {
	tasks := services.DecodeTasks(docs)
	cards := make([]TaskCard, 0, len(tasks))
	for _, t := range tasks {
		cards = append(cards, newTaskCard(t))
	}
	return ViewModel{Count: len(cards), Items: cards}, nil
}

type ClientCard struct {
	ID       string `json:"id"`
	Initial  string `json:"initial"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Industry string `json:"industry"`
	Added    string `json:"added"`
}

func buildClients(docs []store.Doc, _ Request) (ViewModel, error) {
	clients := services.DecodeClients(docs)
	cards := make([]ClientCard, 0, len(clients))
	for _, c := range clients {
		added := "Just now"
		if !c.Timestamp.IsZero() {
			added = c.Timestamp.Format("2006-01-02")
		}
		cards = append(cards, ClientCard{
			ID:       c.ID,
			Initial:  initial(c.Name),
			Name:     c.Name,
			Email:    c.Email,
			Industry: orDefault(c.Industry, "Partner"),
			Added:    added,
		})
	}
	return ViewModel{Count: len(cards), Items: cards}, nil
}

type ContactCard struct {
	ID      string `json:"id"`
	Initial string `json:"initial"`
	Name    string `json:"name"`
	Tag     string `json:"tag"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func buildContacts(docs []store.Doc, _ Request) (ViewModel, error) {
	contacts := services.DecodeContacts(docs)
	cards := make([]ContactCard, 0, len(contacts))
	for _, c := range contacts {
		cards = append(cards, ContactCard{
			ID:      c.ID,
			Initial: initial(c.Name),
			Name:    c.Name,
			Tag:     orDefault(c.Tag, "Contact"),
			Phone:   orDefault(c.Phone, "N/A"),
			Email:   orDefault(c.Email, "N/A"),
		})
	}
	return ViewModel{Count: len(cards), Items: cards}, nil
}

type UserRow struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	Badge    string     `json:"badge"`
	Activity string     `json:"activity,omitempty"`
}

func buildUsers(docs []store.Doc, _ Request) (ViewModel, error) {
	users := services.DecodeUsers(docs)
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:       u.ID,
			Name:     u.DisplayName(),
			Email:    u.Email,
			Role:     u.Role,
			Badge:    u.Role.Badge(),
			Activity: u.Activity,
		})
	}
	return ViewModel{Count: len(rows), Items: rows}, nil
}

func buildSchedule(docs []store.Doc, req Request) (ViewModel, error) {
	events := services.DecodeEvents(docs)
	events = services.FilterEvents(events, req.Scope, req.Session.UserID)
	return ViewModel{Count: len(events), Items: events}, nil
}

// initial is the avatar letter: the upper-cased first rune of name.
func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
