package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"

	"github.com/nutrileaf/nutrileaf-client/internal/middleware"
	"github.com/nutrileaf/nutrileaf-client/internal/websocket"
)

// WSController attaches UI tabs to the notification hub.
type WSController struct {
	hub      *websocket.Hub
	upgrader gorilla.Upgrader
}

func NewWSController(hub *websocket.Hub) *WSController {
	return &WSController{
		hub: hub,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The gateway serves a single local UI; its CORS middleware
			// already fences origins, so the upgrade accepts them all.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Attach upgrades the connection and starts the tab's pumps
// GET /api/v1/ws
func (ctrl *WSController) Attach(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	tab := &websocket.Tab{
		Hub:  ctrl.hub,
		Conn: &websocket.Conn{Conn: conn},
		Send: make(chan []byte, 64),
	}
	ctrl.hub.Register(tab)

	go tab.WritePump()
	go tab.ReadPump()
}
