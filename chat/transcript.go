package chat

import (
	"sync"
	"time"

	"exale/model"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	maxTranscript  = 200
	maxSessions    = 5000
	sessionIdleTTL = 2 * time.Hour
)

// Transcripts keeps each chat session's messages in process memory. The
// least recently used sessions are dropped past maxSessions, and a session
// nobody wrote to for sessionIdleTTL expires.
type Transcripts struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, []model.ChatMessage]
}

func NewTranscripts() *Transcripts {
	return newTranscripts(maxSessions, sessionIdleTTL)
}

func newTranscripts(size int, ttl time.Duration) *Transcripts {
	return &Transcripts{sessions: expirable.NewLRU[string, []model.ChatMessage](size, nil, ttl)}
}

// Messages never creates a session.
func (t *Transcripts) Messages(session string) []model.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs, _ := t.sessions.Get(session)
	return append([]model.ChatMessage(nil), msgs...)
}

func (t *Transcripts) Append(session string, msg model.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs, _ := t.sessions.Get(session)
	msgs = append(append([]model.ChatMessage(nil), msgs...), msg)
	if len(msgs) > maxTranscript {
		msgs = msgs[len(msgs)-maxTranscript:]
	}
	t.sessions.Add(session, msgs)
}

// appendIfEmpty adds msg only to a session with no messages yet.
func (t *Transcripts) appendIfEmpty(session string, msg model.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if msgs, ok := t.sessions.Get(session); !ok || len(msgs) == 0 {
		t.sessions.Add(session, []model.ChatMessage{msg})
	}
}

func (t *Transcripts) Clear(session string) {
	t.mu.Lock()
	t.sessions.Remove(session)
	t.mu.Unlock()
}

func (t *Transcripts) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions.Len()
}
