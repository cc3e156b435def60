package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionQueryParam = "session_id"
	SessionContextKey = "session_id"

	maxSessionIDLength = 128
)

// Session resolves the caller's session id from the X-Session-ID header, or
// the session_id query parameter for websocket upgrades. A new id is issued
// when neither is usable and echoed back in the response header.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := c.Request().Header.Get(SessionHeader)
			if sessionID == "" {
				sessionID = c.QueryParam(SessionQueryParam)
			}
			if !validSessionID(sessionID) {
				sessionID = uuid.New().String()
			}

			c.Set(SessionContextKey, sessionID)
			c.Response().Header().Set(SessionHeader, sessionID)
			return next(c)
		}
	}
}

// SessionID returns the id set by Session, or "" outside it.
func SessionID(c echo.Context) string {
	id, _ := c.Get(SessionContextKey).(string)
	return id
}

func validSessionID(id string) bool {
	if id == "" || len(id) > maxSessionIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
