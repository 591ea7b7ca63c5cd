package chat

import (
	"testing"

	"exale/model"
)

func TestRouteNavigation(t *testing.T) {
	cases := []struct {
		input string
		tab   model.Tab
		title string
	}{
		{"Show my TASKS", model.TabTasks, "Tasks OS"},
		{"go to clients", model.TabClients, ""},
		{"any partners today?", model.TabClients, ""},
		{"open contact list", model.TabContacts, ""},
		{"calendar please", model.TabSchedule, "Schedule"},
		{"what's on the schedule", model.TabSchedule, "Schedule"},
		{"edit the website", model.TabLayouts, ""},
		// Earlier intents win when several keywords appear.
		{"add a task for that client", model.TabTasks, "Tasks OS"},
	}
	for _, tc := range cases {
		r := Route(tc.input)
		if r.Action == nil {
			t.Fatalf("%q: expected navigation action, got reply %q", tc.input, r.Text)
		}
		if r.Action.Type != "navigate" || r.Action.Tab != tc.tab || r.Action.Title != tc.title {
			t.Errorf("%q: got action %+v, want tab %q title %q", tc.input, *r.Action, tc.tab, tc.title)
		}
	}
}

func TestRouteSmallTalkAndFallback(t *testing.T) {
	cases := map[string]string{
		"Hello there":    "Greetings! Ready to work?",
		"system status?": "System is online. All services operational.",
		"thanks a lot":   "You are welcome. Let's keep moving.",
		"what is this":   "Greetings! Ready to work?",
		"order pizza":    Fallback,
		"":               Fallback,
	}
	for input, want := range cases {
		r := Route(input)
		if r.Action != nil {
			t.Errorf("%q: unexpected action %+v", input, *r.Action)
		}
		if r.Text != want {
			t.Errorf("%q: got %q, want %q", input, r.Text, want)
		}
	}
}
