package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/api"
	"github.com/campuslink/campuslink/internal/db"
	"github.com/campuslink/campuslink/internal/service"
	"github.com/campuslink/campuslink/internal/session"
	"github.com/campuslink/campuslink/internal/storage"
	"github.com/campuslink/campuslink/pkg/config"
	"github.com/campuslink/campuslink/pkg/logging"
	"github.com/campuslink/campuslink/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting CampusLink API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the database and apply schema migrations
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Connect the session store
	sessions, err := session.New(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect session store", zap.Error(err))
	}
	defer sessions.CloseClient()

	// Connect the profile-picture blob store
	blobs, err := storage.New(&cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to connect blob store", zap.Error(err))
	}

	// Assemble the service over its stores
	repo := db.NewRepository(database.DB)
	svc := service.New(service.Deps{
		Accounts:      db.NewAccountRepository(repo),
		Posts:         db.NewPostRepository(repo),
		Follows:       db.NewFollowRepository(repo),
		Reports:       db.NewReportRepository(repo),
		Notifications: db.NewNotificationRepository(repo),
		Blobs:         blobs,
		Sessions:      sessions,
	})

	// Create Gin router
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	apiRouter := api.NewRouter(svc)
	apiRouter.SetupRoutes(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
