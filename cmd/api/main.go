package main

import (
	"context"
	"log"
	"os"

	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"idstore/internal/adapter/api"
	"idstore/internal/adapter/api/handler"
	apimiddleware "idstore/internal/adapter/api/middleware"
	"idstore/internal/adapter/api/router"
	"idstore/internal/adapter/repository"
	"idstore/internal/domain/service"
	"idstore/internal/infrastructure/ratelimit"
	"idstore/internal/infrastructure/rtdb"
	"idstore/internal/infrastructure/storage"
	"idstore/internal/infrastructure/websocket"
	"idstore/internal/usecase"
	"idstore/pkg/config"
)

// Scopes the database change stream needs on its access token.
var databaseScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/firebase.database",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Service account from environment variable (production) or file path
	// (local development).
	var credentialsJSON []byte
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		credentialsJSON = []byte(serviceAccountJSON)
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		credentialsJSON, err = os.ReadFile(serviceAccountPath)
		if err != nil {
			log.Fatalf("Failed to read service account file %s: %v", serviceAccountPath, err)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
	}
	opt := option.WithCredentialsJSON(credentialsJSON)

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:   cfg.FirebaseProject,
		DatabaseURL: cfg.DatabaseURL,
	}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	dbClient, err := firebaseApp.Database(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Realtime Database client: %v", err)
	}

	var tokens oauth2.TokenSource
	credentials, err := google.CredentialsFromJSON(ctx, credentialsJSON, databaseScopes...)
	if err != nil {
		log.Fatalf("Failed to build database stream credentials: %v", err)
	}
	tokens = credentials.TokenSource

	streamer := rtdb.NewChangeStreamer(cfg.DatabaseURL, "products", tokens)
	listingRepo := repository.NewRTDBListingRepository(dbClient, streamer)

	var uploader service.MediaUploadService
	switch cfg.MediaProvider {
	case "gcs":
		gcsClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opt)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer gcsClient.Close()
		uploader = gcsClient
	default:
		if cfg.MediaEndpoint == "" {
			log.Fatalf("MEDIA_UPLOAD_ENDPOINT is required when MEDIA_UPLOAD_PROVIDER is %q", cfg.MediaProvider)
		}
		uploader = storage.NewHostUploadClient(cfg.MediaEndpoint, cfg.MediaUploadKey)
	}

	hub := websocket.NewHub()
	hub.Start(ctx)

	catalogUseCase := usecase.NewCatalogUseCase(listingRepo, hub, cfg.ContactPhoneEncoded)
	adminUseCase := usecase.NewAdminUseCase(listingRepo, uploader)

	if err := catalogUseCase.Start(ctx); err != nil {
		log.Fatalf("Failed to start catalog subscription: %v", err)
	}

	handler.Setup(catalogUseCase, adminUseCase)
	handler.SetupHealthHandler(listingRepo)
	handler.SetupWebSocketHandler(hub, catalogUseCase)
	handler.SetupDevSessionHandler()

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	adminMiddleware := apimiddleware.NewAdminMiddleware()

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	router.Setup(e, adminMiddleware, rateLimitMiddleware)
	router.SetupWebSocketRouter(e, rateLimitMiddleware)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
