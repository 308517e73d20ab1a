package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"agriconnect/internal/adapter/api"
	"agriconnect/internal/adapter/api/handler"
	apimiddleware "agriconnect/internal/adapter/api/middleware"
	"agriconnect/internal/adapter/api/router"
	"agriconnect/internal/adapter/repository"
	domainrepo "agriconnect/internal/domain/repository"
	"agriconnect/internal/infrastructure/backend"
	"agriconnect/internal/infrastructure/firestore"
	"agriconnect/internal/infrastructure/ratelimit"
	"agriconnect/internal/infrastructure/redis"
	"agriconnect/internal/infrastructure/token"
	"agriconnect/internal/usecase"
	"agriconnect/pkg/config"
	"agriconnect/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		sessionRepo  domainrepo.SessionRepository
		storeCheck   handler.StoreCheck
		closeStorage func()
	)

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb := redis.New(cfg.RedisAddr)
		if err := redis.Ping(ctx, rdb); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		sessionRepo = repository.NewRedisSessionRepository(rdb)
		storeCheck = func(ctx context.Context) error { return redis.Ping(ctx, rdb) }
		closeStorage = func() { rdb.Close() }
	case config.SessionStoreFirestore:
		firestoreClient, err := firestore.NewClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		sessionRepo = repository.NewFirestoreSessionRepository(firestoreClient)
		storeCheck = func(ctx context.Context) error { return firestore.Ping(ctx, firestoreClient) }
		closeStorage = func() { firestoreClient.Close() }
	default:
		sessionRepo = repository.NewMemorySessionRepository()
		closeStorage = func() {}
	}
	defer closeStorage()
	logger.Info("Session store: %s", cfg.SessionStore)

	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
	loc := cfg.Location()

	userRepo := repository.NewBackendUserRepository(backendClient)
	messageRepo := repository.NewBackendMessageRepository(backendClient)
	orderRepo := repository.NewBackendOrderRepository(backendClient)
	productRepo := repository.NewBackendProductRepository(backendClient)
	profileRepo := repository.NewBackendProfileRepository(backendClient)
	photoUploader := repository.NewBackendPhotoUploader(backendClient)

	workspaces := usecase.NewWorkspaceRegistry(cfg.WorkspaceIdle)
	workspaces.StartSweeper(cfg.WorkspaceIdle/2, ctx.Done())

	authUseCase := usecase.NewAuthUseCase(userRepo, sessionRepo, workspaces)
	dashboardUseCase := usecase.NewDashboardUseCase(messageRepo, orderRepo, productRepo)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, loc)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, loc)
	productUseCase := usecase.NewProductUseCase(productRepo)
	profileUseCase := usecase.NewProfileUseCase(profileRepo, photoUploader)

	handler.Setup(workspaces, authUseCase, dashboardUseCase, messageUseCase, orderUseCase, productUseCase, profileUseCase)
	handler.SetupHealthHandler(cfg.SessionStore, storeCheck)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))

	e.Validator = api.NewValidator()

	tokens := token.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	authMiddleware := apimiddleware.NewAuthMiddleware(tokens, sessionRepo, cfg.SessionCookie, !cfg.IsDevelopment())

	loginLimiter := ratelimit.NewRateLimiter(cfg.LoginRatePerMinute)
	loginLimiter.StartCleanupRoutine(ctx.Done())

	router.Setup(e, authMiddleware, loginLimiter)

	go func() {
		logger.Info("Starting server on port %s (backend %s)", cfg.ServerPort, backendClient.BaseURL())
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
