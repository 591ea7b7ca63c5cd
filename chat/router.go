// Package chat is the Darc assistant: a keyword router from free text to
// dashboard navigation and canned replies, plus per-session transcripts.
package chat

import (
	"strings"

	"exale/model"
)

const (
	Greeting = "Hello! I'm Darc. I can help you navigate the Dashboard. Try asking 'Show my tasks' or 'Go to clients'."
	Fallback = "I'm not sure about that specific command, but I can help you navigate tabs or track tasks."
)

type Action struct {
	Type  string    `json:"type"`
	Tab   model.Tab `json:"tab"`
	Title string    `json:"title,omitempty"`
}

type Reply struct {
	Text   string  `json:"text"`
	Action *Action `json:"action,omitempty"`
}

type intent struct {
	keywords []string
	tab      model.Tab
	reply    string
}

// Checked in order; the first intent with a matching keyword wins.
var intents = []intent{
	{keywords: []string{"task"}, tab: model.TabTasks, reply: "I've opened the Tasks OS for you."},
	{keywords: []string{"client", "partner"}, tab: model.TabClients, reply: "Here is your Partners & Clients directory."},
	{keywords: []string{"contact"}, tab: model.TabContacts, reply: "Opening the Contact List."},
	{keywords: []string{"schedule", "calendar"}, tab: model.TabSchedule, reply: "Opening your Schedule."},
	{keywords: []string{"website", "edit"}, tab: model.TabLayouts, reply: "Loading the CMS Editor for the main website."},
	{keywords: []string{"hello", "hi"}, reply: "Greetings! Ready to work?"},
	{keywords: []string{"status"}, reply: "System is online. All services operational."},
	{keywords: []string{"thank"}, reply: "You are welcome. Let's keep moving."},
}

// Route matches by plain substring, so "this" counts as "hi".
func Route(input string) Reply {
	lower := strings.ToLower(input)
	for _, in := range intents {
		for _, kw := range in.keywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			r := Reply{Text: in.reply}
			if in.tab != "" {
				r.Action = &Action{Type: "navigate", Tab: in.tab, Title: in.tab.Title()}
			}
			return r
		}
	}
	return Reply{Text: Fallback}
}
