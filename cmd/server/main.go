package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mehrabhossain1/midwife-backend/internal/config"
	"github.com/mehrabhossain1/midwife-backend/internal/db"
	httpHandlers "github.com/mehrabhossain1/midwife-backend/internal/http/handlers"
	httpRouter "github.com/mehrabhossain1/midwife-backend/internal/http/router"
	"github.com/mehrabhossain1/midwife-backend/internal/logger"
	"github.com/mehrabhossain1/midwife-backend/internal/repository"
	"github.com/mehrabhossain1/midwife-backend/internal/service"
)

func main() {
	// Context for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load configuration: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Storage connection and indexes.
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("main: failed to connect to storage: %v", err)
	}
	defer safeDisconnect(client)

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("main: failed to create indexes: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Repositories.
	userRepo := repository.NewUserRepository(database)
	reportRepo := repository.NewReportRepository(database)

	// Services.
	authService := service.NewAuthService(userRepo, tokenManager, cfg.BcryptCost)
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(reportRepo)

	// HTTP handlers.
	authHandler := httpHandlers.NewAuthHandler(authService)
	adminHandler := httpHandlers.NewAdminHandler(userService)
	reportHandler := httpHandlers.NewReportHandler(reportService)
	healthHandler := httpHandlers.NewHealthHandler(client)

	engine := httpRouter.SetupRouter(cfg, authHandler, adminHandler, reportHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Stop the server when a signal arrives.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: http server shutdown error: %v", err)
		}
	}()

	log.Printf("main: HTTP server listening on port %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: server exited with error: %v", err)
	}
}

// safeDisconnect closes the storage connection.
func safeDisconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("main: storage disconnect error: %v", err)
	}
}
