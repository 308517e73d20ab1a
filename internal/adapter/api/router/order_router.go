package router

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/handler"
	"agriconnect/internal/adapter/api/middleware"
)

func SetupOrderRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := v1.Group("/orders")
	orders.Use(authMiddleware.RequireAuth)
	orders.GET("", orderHandler.Mount)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)
}
