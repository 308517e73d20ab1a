package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"agriconnect/internal/infrastructure/ratelimit"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/logger"
	"agriconnect/pkg/response"
)

// RateLimit throttles action per client IP.
func RateLimit(rl *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := rl.Allow(ip, action)
			if !allowed {
				logger.Warn("RATE LIMIT: %s blocked for %s (retry in %v)", ip, action, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Trop de tentatives, veuillez réessayer plus tard"))
			}

			return next(c)
		}
	}
}
