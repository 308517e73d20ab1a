package router

import (
	"github.com/labstack/echo/v4"

	"agriconnect/internal/adapter/api/handler"
	"agriconnect/internal/adapter/api/middleware"
)

func SetupProfileRouter(v1 *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	profile := v1.Group("/profile")
	profile.Use(authMiddleware.RequireAuth)
	profile.GET("", profileHandler.Mount)
	profile.PATCH("", profileHandler.UpdateFields)
	profile.PUT("", profileHandler.Save)
	profile.POST("/cultures", profileHandler.AddCulture)
	profile.DELETE("/cultures/:culture", profileHandler.RemoveCulture)
	profile.POST("/photo", profileHandler.UploadPhoto)
}
