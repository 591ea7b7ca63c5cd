package chat

import (
	"net/http"
	"strings"

	"exale/chat"
	"exale/controller"
	"exale/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Chat-Session"
	sessionCookie = "darc_session"
)

// ChatController is open to guests; transcripts are keyed by chat session,
// not by user.
func ChatController(router *gin.Engine, assistant *chat.Assistant) {
	routes := router.Group("/chat")
	{
		routes.GET("/messages", func(c *gin.Context) {
			History(c, assistant)
		})
		routes.POST("/messages", func(c *gin.Context) {
			Ask(c, assistant)
		})
		routes.DELETE("/messages", func(c *gin.Context) {
			Clear(c, assistant)
		})
		routes.GET("/ws", func(c *gin.Context) {
			Socket(c, assistant)
		})
	}
}

func History(c *gin.Context, assistant *chat.Assistant) {
	c.JSON(http.StatusOK, gin.H{"messages": assistant.History(chatSession(c))})
}

func Ask(c *gin.Context, assistant *chat.Assistant) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		controller.InvalidInput(c)
		return
	}
	msg, action, err := assistant.Ask(chatSession(c), req.Text)
	if err != nil {
		controller.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ChatReply{Message: msg, Action: action})
}

func Clear(c *gin.Context, assistant *chat.Assistant) {
	assistant.Clear(chatSession(c))
	c.Status(http.StatusNoContent)
}

// chatSession reads the session id from the header or cookie, starting a new
// session when neither is present.
func chatSession(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(sessionHeader)); id != "" {
		return id
	}
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	if id := strings.TrimSpace(c.Query("session")); id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	c.Header(sessionHeader, id)
	return id
}
