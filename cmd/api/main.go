package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/api/option"

	"luxuryline/internal/adapter/api"
	"luxuryline/internal/adapter/api/handler"
	apimiddleware "luxuryline/internal/adapter/api/middleware"
	"luxuryline/internal/adapter/api/router"
	"luxuryline/internal/adapter/repository"
	"luxuryline/internal/domain/entity"
	domainrepo "luxuryline/internal/domain/repository"
	"luxuryline/internal/domain/service"
	"luxuryline/internal/infrastructure/email"
	"luxuryline/internal/infrastructure/ratelimit"
	"luxuryline/internal/infrastructure/storage"
	"luxuryline/internal/infrastructure/websocket"
	"luxuryline/internal/usecase"
	"luxuryline/pkg/config"
	"luxuryline/pkg/logger"
)

const (
	sessionCleanupInterval   = 10 * time.Minute
	rateLimitCleanupInterval = time.Hour
	rateLimitVisitorIdle     = 2 * time.Hour
	shutdownTimeout          = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger().Fatalf("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogRepo, err := loadCatalog(ctx, cfg)
	if err != nil {
		logger.Logger().Fatalf("Failed to load catalog: %v", err)
	}

	slots, closeSlots, err := openSlotStore(ctx, cfg)
	if err != nil {
		logger.Logger().Fatalf("Failed to open %s slot store: %v", cfg.Store.Driver, err)
	}
	defer closeSlots()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	validator := api.NewValidator()

	checkoutDeps := usecase.CheckoutDeps{
		Payments:  service.NewSimulatedPaymentService(cfg.Checkout.PaymentDelay),
		Validator: validator.Engine(),
	}
	if cfg.Email.SendGridAPIKey != "" {
		checkoutDeps.Mailer = email.NewSendGridMailer(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
		logger.Info("Order confirmation emails enabled")
	}

	catalogUseCase := usecase.NewCatalogUseCase(catalogRepo)
	notifier := usecase.MultiNotifier{
		wsManager,
		usecase.NotifierFunc(func(sessionID string, n entity.Notification) {
			logger.Debug("Notification for session %s: %s", sessionID, n.Title)
		}),
	}
	sessionUseCase := usecase.NewSessionUseCase(slots, notifier, checkoutDeps, cfg.Session.IdleTTL)
	sessionUseCase.StartCleanupRoutine(ctx, sessionCleanupInterval)

	generalLimiter := ratelimit.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	paymentLimiter := ratelimit.NewRateLimiter(cfg.RateLimit.PaymentPerMinute/60, cfg.RateLimit.PaymentBurst)
	apimiddleware.StartRateLimitCleanup(ctx, generalLimiter, rateLimitCleanupInterval, rateLimitVisitorIdle)
	apimiddleware.StartRateLimitCleanup(ctx, paymentLimiter, rateLimitCleanupInterval, rateLimitVisitorIdle)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, apimiddleware.SessionHeader},
		ExposeHeaders: []string{apimiddleware.SessionHeader},
	}))

	e.Validator = validator

	router.Setup(e, router.Handlers{
		Health:    handler.NewHealthHandler(sessionUseCase),
		Product:   handler.NewProductHandler(catalogUseCase, sessionUseCase),
		Cart:      handler.NewCartHandler(sessionUseCase, catalogUseCase),
		Wishlist:  handler.NewWishlistHandler(sessionUseCase, catalogUseCase),
		Checkout:  handler.NewCheckoutHandler(sessionUseCase),
		Order:     handler.NewOrderHandler(sessionUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager),
	}, router.Limiters{
		General: generalLimiter,
		Payment: paymentLimiter,
	})

	go func() {
		logger.Info("LuxuryLine API listening on :%s (%s store, %d products)", cfg.ServerPort, cfg.Store.Driver, len(catalogRepo.Products()))
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Logger().Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config) (domainrepo.CatalogRepository, error) {
	if cfg.Catalog.GCSBucket == "" {
		return repository.NewStaticCatalogRepository()
	}

	client, err := storage.NewCloudStorageClient(ctx, cfg.Catalog.GCSBucket, cfg.Firestore.ServiceAccountPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	data, err := client.ReadObject(ctx, cfg.Catalog.GCSObject)
	if err != nil {
		return nil, err
	}
	logger.Info("Catalog loaded from gs://%s/%s", cfg.Catalog.GCSBucket, cfg.Catalog.GCSObject)
	return repository.NewCatalogRepositoryFromYAML(data)
}

func openSlotStore(ctx context.Context, cfg *config.Config) (domainrepo.SlotStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return repository.NewRedisSlotRepository(client), func() { client.Close() }, nil

	case config.StoreDriverFirestore:
		var opts []option.ClientOption
		if cfg.Firestore.ServiceAccountJSON != "" {
			opts = append(opts, option.WithCredentialsJSON([]byte(cfg.Firestore.ServiceAccountJSON)))
		} else if cfg.Firestore.ServiceAccountPath != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firestore.ServiceAccountPath))
		}
		client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, opts...)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewFirestoreSlotRepository(client), func() { client.Close() }, nil

	case config.StoreDriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			client.Disconnect(context.Background())
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Failed to disconnect from MongoDB: %v", err)
			}
		}
		return repository.NewMongoSlotRepository(client.Database(cfg.Mongo.Database)), closeFn, nil

	default:
		return repository.NewMemorySlotRepository(), func() {}, nil
	}
}
