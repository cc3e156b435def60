package router

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/handler"
	"luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/infrastructure/ratelimit"
)

type Handlers struct {
	Health    *handler.HealthHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Wishlist  *handler.WishlistHandler
	Checkout  *handler.CheckoutHandler
	Order     *handler.OrderHandler
	WebSocket *handler.WebSocketHandler
}

// Limiters are applied per client IP. Payment is limited on top of General.
type Limiters struct {
	General *ratelimit.RateLimiter
	Payment *ratelimit.RateLimiter
}

func Setup(e *echo.Echo, h Handlers, limiters Limiters) {
	SetupHealthRouter(e, h.Health)

	v1 := e.Group("/v1")
	v1.Use(middleware.Session())
	if limiters.General != nil {
		v1.Use(middleware.RateLimit(limiters.General))
	}

	SetupProductRouter(v1, h.Product)
	SetupCartRouter(v1, h.Cart)
	SetupWishlistRouter(v1, h.Wishlist)
	SetupCheckoutRouter(v1, h.Checkout, limiters.Payment)
	SetupOrderRouter(v1, h.Order)
	SetupWebSocketRouter(v1, h.WebSocket)
}
