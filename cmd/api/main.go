package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/handler"
	apimiddleware "github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/middleware"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/api/router"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/adapter/repository"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/domain/service"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/infrastructure/firebase"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/infrastructure/storage"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/infrastructure/websocket"
	"github.com/mattwyattcooper/circularbuild-sub000/internal/usecase"
	"github.com/mattwyattcooper/circularbuild-sub000/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	credentialsPath := ""

	// Service account from env var in production, file path locally
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		credentialsPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if credentialsPath == "" {
			credentialsPath = "./service-account.json"
		}
		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", credentialsPath)
		}
		opt = option.WithCredentialsFile(credentialsPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	wishlistRepo := repository.NewFirestoreWishlistRepository(firestoreClient)
	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	newsRepo := repository.NewFirestoreNewsRepository(firestoreClient)

	fbAuthClient := firebase.NewAuthClient(authClient)

	geocoder := service.NewNominatimGeocodingService(cfg.GeocoderBaseURL)
	emailService := service.NewResendEmailService(cfg.EmailAPIKey, cfg.EmailFromAddr)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	listingUseCase := usecase.NewListingUseCase(listingRepo, chatRepo, geocoder)
	chatUseCase := usecase.NewChatUseCase(chatRepo, listingRepo, profileRepo, wsManager, emailService)
	wishlistUseCase := usecase.NewWishlistUseCase(wishlistRepo, listingRepo)
	profileUseCase := usecase.NewProfileUseCase(profileRepo)
	impactUseCase := usecase.NewImpactUseCase(listingRepo, chatRepo, profileRepo)
	newsUseCase := usecase.NewNewsUseCase(newsRepo)

	// Expired listings get removed, and their chats closed, on a timer
	listingUseCase.StartSweepJob(ctx, time.Duration(cfg.SweepIntervalMinutes)*time.Minute)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	handlers := router.Handlers{
		Listing:   handler.NewListingHandler(listingUseCase),
		Chat:      handler.NewChatHandler(chatUseCase),
		Wishlist:  handler.NewWishlistHandler(wishlistUseCase),
		Impact:    handler.NewImpactHandler(impactUseCase, profileUseCase),
		Profile:   handler.NewProfileHandler(profileUseCase, fbAuthClient),
		News:      handler.NewNewsHandler(newsUseCase),
		File:      handler.NewFileHandler(storageClient),
		Health:    handler.NewHealthHandler(firestoreClient),
		WebSocket: handler.NewWebSocketHandler(wsManager),
	}

	router.Setup(e, handlers, authMiddleware)

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
