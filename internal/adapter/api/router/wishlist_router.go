package router

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/handler"
)

func SetupWishlistRouter(v1 *echo.Group, wishlistHandler *handler.WishlistHandler) {
	wishlist := v1.Group("/wishlist")
	wishlist.GET("", wishlistHandler.GetWishlist)
	wishlist.POST("/:productId", wishlistHandler.AddToWishlist)
	wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
	wishlist.GET("/:productId/status", wishlistHandler.CheckWishlistStatus)
}
