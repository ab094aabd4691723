package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/middleware"
)

func SetupImpactRouter(e *echo.Echo, impactHandler *handler.ImpactHandler, authMiddleware *middleware.AuthMiddleware) {
	impactGroup := e.Group("/v1/impact")
	impactGroup.Use(authMiddleware.Authenticate)

	impactGroup.GET("/me", impactHandler.GetPersonalTotals)
	impactGroup.GET("/organization", impactHandler.GetOrganizationTotals)
}
