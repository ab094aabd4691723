package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/middleware"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware) {
	wishlistGroup := e.Group("/v1/wishlist")
	wishlistGroup.Use(authMiddleware.Authenticate)

	wishlistGroup.GET("", wishlistHandler.List)
	wishlistGroup.GET("/count", wishlistHandler.Count)
	wishlistGroup.POST("/:listingId", wishlistHandler.Add)
	wishlistGroup.DELETE("/:listingId", wishlistHandler.Remove)
	wishlistGroup.GET("/:listingId/status", wishlistHandler.CheckStatus)
}
