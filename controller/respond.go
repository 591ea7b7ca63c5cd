// Package controller holds what the route controllers share.
package controller

import (
	"errors"
	"log"
	"net/http"

	"exale/chat"
	"exale/services"

	"github.com/gin-gonic/gin"
)

// ErrorResponse answers with the status matching err and its message.
func ErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalid), errors.Is(err, chat.ErrEmptyMessage):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func InvalidInput(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
}
