package handlers

import (
	"github.com/gin-gonic/gin"

	"echolearn/internal/ws"
)

// WS upgrades a connection to the notification stream.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return ws.HandleWS(hub)
}
