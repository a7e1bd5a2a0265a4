package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"storefront/api/routes"
	"storefront/internal/checkout"
	"storefront/internal/notifications"
	"storefront/internal/shared/config"
	"storefront/internal/shared/database"
	"storefront/internal/shared/middleware"
	"storefront/pkg/logger"
	"storefront/pkg/ratelimit"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	appLogger.Info("Starting storefront BFF",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
		slog.String("upstream", cfg.Upstream.BaseURL),
	)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Redis unavailable, continuing with in-memory stores", slog.Any("error", err))
		db = &database.DB{}
	}
	defer db.Close()

	// Rate limiting needs the shared Redis window
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.GetRedisClient() != nil {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			BrowseRequests:  cfg.RateLimit.BrowseRequests,
			SessionRequests: cfg.RateLimit.SessionRequests,
			PromoRequests:   cfg.RateLimit.PromoRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Booking notifications go to Kafka when configured, nowhere otherwise
	var producer notifications.Producer
	if cfg.Kafka.Enabled {
		kafkaProducer, err := notifications.NewKafkaProducer(&notifications.KafkaProducerConfig{
			Brokers:           cfg.Kafka.Brokers,
			NotificationTopic: cfg.Kafka.NotificationTopic,
			RetryMax:          cfg.Kafka.RetryMax,
			Timeout:           cfg.Kafka.Timeout,
			RequiredAcks:      notifications.DefaultKafkaProducerConfig().RequiredAcks,
		})
		if err != nil {
			appLogger.Error("Failed to initialize Kafka producer, notifications disabled", slog.Any("error", err))
		} else {
			producer = kafkaProducer
			appLogger.Info("Kafka notification producer initialized", slog.String("topic", cfg.Kafka.NotificationTopic))
		}
	}
	publisher := notifications.NewPublisher(producer)
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing notification producer", slog.Any("error", err))
		}
	}()

	// Idle details and checkout views are closed by the janitor
	registry := checkout.NewRegistry(cfg.Checkout.SessionTTL)
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go registry.Run(janitorCtx, cfg.Checkout.JanitorInterval)

	router := setupRouter(cfg, db, publisher, registry, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("catalog", fmt.Sprintf("http://localhost:%s%s", cfg.Port, cfg.GetCatalogPath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis", db.GetRedisClient() != nil),
			slog.Bool("rate_limiting", rateLimiter != nil),
			slog.Bool("kafka", producer != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	// Leaving every open view drops any late collaborator responses
	stopJanitor()
	registry.CloseAll()

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, publisher *notifications.Publisher, registry *checkout.Registry, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery())
	engine.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.IsProduction() && len(cfg.CORSAllowedOrigins) == 0 {
		appLogger.Warn("CORS_ALLOWED_ORIGINS is empty, admitting every origin without credentials")
	}

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, publisher, registry)
	appRouter.SetupRoutes(engine)

	return engine
}
