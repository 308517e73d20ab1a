package router

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/handler"
	"agriconnect/internal/adapter/api/middleware"
)

func SetupMessageRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	messageHandler := handler.GetMessageHandler()

	messages := v1.Group("/messages")
	messages.Use(authMiddleware.RequireAuth)
	messages.GET("", messageHandler.Mount)
	messages.POST("", messageHandler.Send)
	messages.POST("/refresh", messageHandler.Refresh)
	messages.POST("/contacts/:id", messageHandler.SelectContact)
}
