package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/middleware"
)

func SetupProfileRouter(e *echo.Echo, profileHandler *handler.ProfileHandler, authMiddleware *middleware.AuthMiddleware) {
	profileGroup := e.Group("/v1/profiles")
	profileGroup.Use(authMiddleware.Authenticate)

	profileGroup.GET("/me", profileHandler.GetMyProfile)
	profileGroup.PUT("/me", profileHandler.UpdateMyProfile)
	profileGroup.GET("/:id", profileHandler.GetProfile)
}
