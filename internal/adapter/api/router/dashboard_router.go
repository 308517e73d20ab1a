package router

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/handler"
	"agriconnect/internal/adapter/api/middleware"
)

func SetupDashboardRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	dashboardHandler := handler.GetDashboardHandler()

	v1.GET("/dashboard", dashboardHandler.GetOverview, authMiddleware.RequireAuth)
}
