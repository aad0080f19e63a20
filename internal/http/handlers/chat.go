package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat answers one assistant message. The reply source is reported so
// clients can tell AI answers from rule-based ones.
func (h *Handler) Chat(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if len(req.Message) > 2000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message too long"})
		return
	}

	reply, source := h.Chatbot.Reply(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{
		"response": reply,
		"source":   source,
	})
}
