package router

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/handler"
	"agriconnect/internal/adapter/api/middleware"
)

func SetupProductRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	products := v1.Group("/products")
	products.Use(authMiddleware.RequireAuth)
	products.Use(middleware.RequireSeller)
	products.GET("", productHandler.ListMyProducts)
	products.DELETE("/:id", productHandler.DeleteProduct)
}
