package views

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"exale/services"
	"exale/store"
)

func TestStreamPatchesOnEveryChange(t *testing.T) {
	st := store.NewMemoryStore()
	s, err := NewStreamer(st, nil)
	if err != nil {
		t.Fatalf("streamer: %v", err)
	}
	v, _ := Lookup(Contacts)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Stream(w, r, v, Request{})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("unexpected content type %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	// waitFor reads events until every needle has shown up, in any order.
	waitFor := func(needles ...string) {
		t.Helper()
		seen := map[string]bool{}
		for lines.Scan() {
			for _, n := range needles {
				if strings.Contains(lines.Text(), n) {
					seen[n] = true
				}
			}
			if len(seen) == len(needles) {
				return
			}
		}
		t.Fatalf("stream ended before %q: %v", needles, lines.Err())
	}

	waitFor("#contacts-list", "No contacts added.")

	if _, err := st.Add(context.Background(), services.CollectionContacts, map[string]interface{}{"name": "Dana", "timestamp": store.ServerTimestamp}); err != nil {
		t.Fatalf("add: %v", err)
	}
	waitFor("Dana")
}
