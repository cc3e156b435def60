package router

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/handler"
)

func SetupCartRouter(v1 *echo.Group, cartHandler *handler.CartHandler) {
	cart := v1.Group("/cart")
	cart.GET("", cartHandler.GetCart)
	cart.DELETE("", cartHandler.ClearCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.PUT("/items/:key", cartHandler.UpdateItem)
	cart.DELETE("/items/:key", cartHandler.RemoveItem)
}
