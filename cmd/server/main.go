package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/sibsankar910/inkflows-server/internal/router"
	"github.com/sibsankar910/inkflows-server/pkg/config"
	"github.com/sibsankar910/inkflows-server/pkg/firebase"
	"github.com/sibsankar910/inkflows-server/validators"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := config.InitDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Firebase storage
	ctx := context.Background()
	storage, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseStorageBucket)
	if err != nil {
		logger.Fatal("failed to initialize firebase", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, cfg, logger)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Mongo, storage, cfg, logger)

	// Start server
	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
