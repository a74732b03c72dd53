package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Replier answers chat messages about an analyzed city.
type Replier interface {
	Reply(ctx context.Context, city, message string) string
}

type chatRequest struct {
	City    string `json:"city" binding:"required"`
	Message string `json:"message"`
}

// Chat answers from the cached analysis of the requested city.
func Chat(c *gin.Context, replier Replier) {
	var request chatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply": replier.Reply(c.Request.Context(), request.City, request.Message),
	})
}
