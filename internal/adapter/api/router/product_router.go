package router

import (
	"github.com/labstack/echo/v4"

	"luxuryline/internal/adapter/api/handler"
)

func SetupProductRouter(v1 *echo.Group, productHandler *handler.ProductHandler) {
	products := v1.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/filters", productHandler.GetFilterOptions)
	products.GET("/featured", productHandler.GetFeaturedProducts)
	products.GET("/on-sale", productHandler.GetOnSaleProducts)
	products.GET("/:id", productHandler.GetProduct)

	categories := v1.Group("/categories")
	categories.GET("", productHandler.ListCategories)
	categories.GET("/:slug/products", productHandler.ListCategoryProducts)
}
