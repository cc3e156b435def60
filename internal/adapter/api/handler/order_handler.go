package handler

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/usecase"
	"luxuryline/pkg/response"
)

type OrderHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewOrderHandler(sessionUseCase *usecase.SessionUseCase) *OrderHandler {
	return &OrderHandler{
		sessionUseCase: sessionUseCase,
	}
}

// ListOrders returns the session's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	session := h.sessionUseCase.Get(c.Request().Context(), middleware.SessionID(c))

	orders := session.Orders.Orders()
	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = newOrderView(o)
	}

	return response.Success(c, map[string]interface{}{
		"orders": views,
	})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	session := h.sessionUseCase.Get(c.Request().Context(), middleware.SessionID(c))

	order, err := session.Orders.GetOrder(c.Param("orderNumber"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"order": newOrderView(order),
	})
}
