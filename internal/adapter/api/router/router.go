package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/middleware"
)

type Handlers struct {
	Listing   *handler.ListingHandler
	Chat      *handler.ChatHandler
	Wishlist  *handler.WishlistHandler
	Impact    *handler.ImpactHandler
	Profile   *handler.ProfileHandler
	News      *handler.NewsHandler
	File      *handler.FileHandler
	Health    *handler.HealthHandler
	WebSocket *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupHealthRouter(e, h.Health)
	SetupListingRouter(e, h.Listing, authMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware)
	SetupWishlistRouter(e, h.Wishlist, authMiddleware)
	SetupImpactRouter(e, h.Impact, authMiddleware)
	SetupProfileRouter(e, h.Profile, authMiddleware)
	SetupNewsRouter(e, h.News)
	SetupFileRouter(e, h.File, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket, authMiddleware)
}
