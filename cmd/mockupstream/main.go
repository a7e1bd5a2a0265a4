package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"storefront/internal/collaborator"
	"storefront/internal/shared/config"
	"storefront/internal/shared/middleware"
	"storefront/pkg/logger"
)

// mockupstream serves the collaborator API from memory for local runs of the BFF
func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		appLogger.Info("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	store := collaborator.NewStore()
	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery())
	collaborator.SetupRoutes(engine, collaborator.NewHandler(store))

	srv := &http.Server{
		Addr:    ":" + cfg.MockUpstream.Port,
		Handler: engine,
	}

	go func() {
		appLogger.Info("🌱 Mock collaborator running",
			slog.String("address", srv.Addr),
			slog.Int("experiences", len(store.ListExperiences())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Mock collaborator failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}
}
