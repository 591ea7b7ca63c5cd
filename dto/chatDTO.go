package dto

import (
	"exale/chat"
	"exale/model"
)

type ChatRequest struct {
	Text string `json:"text"`
}

type ChatReply struct {
	Message model.ChatMessage `json:"message"`
	Action  *chat.Action      `json:"action,omitempty"`
}

// ChatFrame is one websocket message sent to the widget.
type ChatFrame struct {
	Type   string         `json:"type"`
	Role   model.ChatRole `json:"role,omitempty"`
	Text   string         `json:"text,omitempty"`
	Time   int64          `json:"time,omitempty"`
	Action *chat.Action   `json:"action,omitempty"`
}
