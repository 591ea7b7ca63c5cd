package middleware

import (
	"net/http"
	"strings"

	"exale/model"
	"exale/services"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// SessionMiddleware resolves the caller's session for every request. A
// request without a token continues as a guest; a bad token is rejected.
func SessionMiddleware(gate *services.SessionGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := gate.Resolve(c.Request.Context(), bearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if header := c.Request.Header.Get("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	// EventSource and WebSocket clients cannot set headers.
	return c.Query("token")
}

// CurrentSession returns the session set by SessionMiddleware, or a guest.
func CurrentSession(c *gin.Context) model.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(model.Session); ok {
			return s
		}
	}
	return model.GuestSession()
}

func RequireSignedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Role.SignedIn() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please sign in first."})
			return
		}
		c.Next()
	}
}
