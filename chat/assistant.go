package chat

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"exale/model"
)

var ErrEmptyMessage = errors.New("message text is required")

type Assistant struct {
	transcripts *Transcripts
	delay       time.Duration
	jitter      time.Duration
	now         func() time.Time
}

func NewAssistant(transcripts *Transcripts, delay, jitter time.Duration) *Assistant {
	return &Assistant{transcripts: transcripts, delay: delay, jitter: jitter, now: time.Now}
}

// History returns the session transcript. A session that never asked
// anything sees only the greeting, and nothing is stored for it.
func (a *Assistant) History(session string) []model.ChatMessage {
	if msgs := a.transcripts.Messages(session); len(msgs) > 0 {
		return msgs
	}
	return []model.ChatMessage{a.message(model.ChatDarc, Greeting)}
}

// Ask records the user's text and the routed reply together.
func (a *Assistant) Ask(session, text string) (model.ChatMessage, *Action, error) {
	reply, err := a.Receive(session, text)
	if err != nil {
		return model.ChatMessage{}, nil, err
	}
	return a.Respond(session, reply), reply.Action, nil
}

// Receive records the user's text and routes it. The reply is not part of
// the transcript until Respond.
func (a *Assistant) Receive(session, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}
	a.transcripts.appendIfEmpty(session, a.message(model.ChatDarc, Greeting))
	a.transcripts.Append(session, a.message(model.ChatUser, text))
	return Route(text), nil
}

// Respond records the reply, stamped with the time it is delivered.
func (a *Assistant) Respond(session string, reply Reply) model.ChatMessage {
	msg := a.message(model.ChatDarc, reply.Text)
	a.transcripts.Append(session, msg)
	return msg
}

func (a *Assistant) Clear(session string) {
	a.transcripts.Clear(session)
}

// Think waits as long as the assistant pretends to think before replying.
func (a *Assistant) Think(ctx context.Context) error {
	d := a.delay
	if a.jitter > 0 {
		d += rand.N(a.jitter)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Assistant) message(role model.ChatRole, text string) model.ChatMessage {
	return model.ChatMessage{Role: role, Text: text, Time: a.now().UnixMilli()}
}
