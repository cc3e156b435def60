package router

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/handler"
)

func SetupOrderRouter(v1 *echo.Group, orderHandler *handler.OrderHandler) {
	orders := v1.Group("/orders")
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:orderNumber", orderHandler.GetOrder)
}
