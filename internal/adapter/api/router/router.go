package router

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/infrastructure/ratelimit"
)

// Setup mounts every route. All /v1 routes run inside the session middleware.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, loginLimiter *ratelimit.RateLimiter) {
	v1 := e.Group("/v1", authMiddleware.Session, NoStore())

	SetupAuthRouter(v1, authMiddleware, loginLimiter)
	SetupDashboardRouter(v1, authMiddleware)
	SetupMessageRouter(v1, authMiddleware)
	SetupOrderRouter(v1, authMiddleware)
	SetupProductRouter(v1, authMiddleware)
	SetupProfileRouter(v1, authMiddleware)
	SetupHealthRouter(e)
}
