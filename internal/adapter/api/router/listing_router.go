package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, authMiddleware *middleware.AuthMiddleware) {
	// Browsing is public
	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/search", listingHandler.SearchListings)
	listings.GET("/:id", listingHandler.GetListing)

	// Writes require the caller to be signed in
	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing)
	myListings.PUT("/:id", listingHandler.UpdateListing)
	myListings.POST("/:id/status", listingHandler.TransitionStatus)
}
