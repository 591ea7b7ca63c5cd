package chat

import (
	"encoding/json"
	"log"
	"net/http"

	"exale/chat"
	"exale/dto"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Socket answers each {text} frame with a typing frame and then, after the
// assistant's thinking delay, the reply.
func Socket(c *gin.Context, assistant *chat.Assistant) {
	session := chatSession(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, c.Writer.Header())
	if err != nil {
		log.Printf("chat websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req dto.ChatRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			log.Printf("chat websocket: bad frame: %v", err)
			continue
		}

		reply, err := assistant.Receive(session, req.Text)
		if err != nil {
			if conn.WriteJSON(dto.ChatFrame{Type: "error", Text: err.Error()}) != nil {
				return
			}
			continue
		}
		if err := conn.WriteJSON(dto.ChatFrame{Type: "typing"}); err != nil {
			return
		}
		if err := assistant.Think(ctx); err != nil {
			return
		}
		msg := assistant.Respond(session, reply)
		if err := conn.WriteJSON(dto.ChatFrame{Type: "message", Role: msg.Role, Text: msg.Text, Time: msg.Time, Action: reply.Action}); err != nil {
			return
		}
	}
}
