package router

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/handler"
)

// SetupWebSocketRouter mounts the notification socket. Browsers cannot set
// headers on upgrade requests, so the session may come from ?session_id=.
func SetupWebSocketRouter(v1 *echo.Group, wsHandler *handler.WebSocketHandler) {
	v1.GET("/ws", wsHandler.HandleWebSocket)
}
