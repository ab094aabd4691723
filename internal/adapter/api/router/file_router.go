package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	fileGroup := e.Group("/v1/files")
	fileGroup.Use(authMiddleware.Authenticate)

	fileGroup.POST("/photos", fileHandler.UploadPhoto)
}
