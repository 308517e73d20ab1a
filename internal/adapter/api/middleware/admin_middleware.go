package middleware

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/domain/entity"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/response"
)

// RequireSeller lets through only users who own a product catalog. It must
// run after RequireAuth.
func RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthenticated(c, entity.PathLogin)
		}
		if !user.Role.CanManageListings() {
			return response.Error(c, errors.Forbidden("Seller privileges required", nil))
		}
		return next(c)
	}
}
