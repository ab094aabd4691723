package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
)

func SetupNewsRouter(e *echo.Echo, newsHandler *handler.NewsHandler) {
	newsGroup := e.Group("/v1/news")

	newsGroup.GET("", newsHandler.ListPosts)
	newsGroup.GET("/:slug", newsHandler.GetPost)
}
