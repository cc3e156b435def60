package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/middleware"
	ws "luxuryline/internal/infrastructure/websocket"
	"luxuryline/pkg/errors"
	"luxuryline/pkg/logger"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
	}
}

// HandleWebSocket subscribes the socket to the session's notifications.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		return errors.BadRequest("Session is required", nil)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed for session %s: %v", sessionID, err)
		return nil
	}

	client := ws.NewClient(sessionID, conn)
	if !h.wsManager.AddClient(client) {
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
