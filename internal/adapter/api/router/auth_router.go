package router

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/handler"
	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware, loginLimiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	// Public routes
	v1.GET("/session", authHandler.Session)
	v1.GET("/login", authHandler.LoginView)
	v1.POST("/auth/login", authHandler.Login, middleware.RateLimit(loginLimiter, "login"))
	v1.POST("/auth/register", authHandler.Register, middleware.RateLimit(loginLimiter, "register"))
	v1.POST("/auth/logout", authHandler.Logout)

	// Protected routes
	v1.PATCH("/auth/profile", authHandler.UpdateProfile, authMiddleware.RequireAuth)
}
