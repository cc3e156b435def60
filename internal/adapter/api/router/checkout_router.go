package router

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/handler"
	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/infrastructure/ratelimit"
)

func SetupCheckoutRouter(v1 *echo.Group, checkoutHandler *handler.CheckoutHandler, paymentLimiter *ratelimit.RateLimiter) {
	checkout := v1.Group("/checkout")
	checkout.POST("", checkoutHandler.BeginCheckout)
	checkout.GET("", checkoutHandler.GetCheckout)
	checkout.DELETE("", checkoutHandler.CancelPayment)
	checkout.POST("/shipping", checkoutHandler.SubmitShipping)
	checkout.POST("/back", checkoutHandler.Back)

	if paymentLimiter != nil {
		checkout.POST("/payment", checkoutHandler.SubmitPayment, middleware.RateLimit(paymentLimiter))
	} else {
		checkout.POST("/payment", checkoutHandler.SubmitPayment)
	}
}
