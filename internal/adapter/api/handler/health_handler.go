package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"luxuryline/internal/usecase"
)

type HealthHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewHealthHandler(sessionUseCase *usecase.SessionUseCase) *HealthHandler {
	return &HealthHandler{
		sessionUseCase: sessionUseCase,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "Server is running",
		"time":     time.Now().Format(time.RFC3339),
		"sessions": h.sessionUseCase.Count(),
	})
}
