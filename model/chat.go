package model

type ChatRole string

const (
	ChatUser ChatRole = "user"
	ChatDarc ChatRole = "darc"
)

type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
	Time int64    `json:"time"` // unix ms
}

// Tab is a dashboard tab the assistant can switch to.
type Tab string

const (
	TabHome     Tab = "home"
	TabTasks    Tab = "tasks"
	TabClients  Tab = "clients"
	TabContacts Tab = "contacts"
	TabSchedule Tab = "schedule"
	TabLayouts  Tab = "layouts"
	TabUpdates  Tab = "updates"
)

var tabTitles = map[Tab]string{
	TabHome:     "Overview",
	TabTasks:    "Tasks OS",
	TabSchedule: "Schedule",
	TabUpdates:  "Updates",
}

// Title is the page title for tabs that have one; the rest keep whatever
// title the page already shows.
func (t Tab) Title() string {
	return tabTitles[t]
}
