package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/api"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/routes"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/models"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/repositories"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/config"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/scheduler"

	"github.com/gofiber/fiber/v2"

	_ "github.com/SasmithaSL/Diamond-Store-Admin/docs" // Swagger docs
)

// @title Diamond Store Admin API
// @version 1.0
// @description Admin dashboard backend for the diamond top-up and points system

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.AppMode)
	logger.SetLevel(cfg.LogLevel)

	// Connect to the audit/receipt database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := models.AutoMigrate(db.DB); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to auto migrate")
	}
	logger.Log.Info().Msg("Database migration completed")

	auditService := services.NewAuditService(repositories.NewAuditRepository(db.DB), cfg.Audit.RetentionDays)

	sched := scheduler.New()
	sched.Start()

	if _, err := sched.Cron(cfg.Audit.CleanupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := auditService.Cleanup(ctx); err != nil {
			logger.Log.Error().Err(err).Msg("Audit cleanup failed")
		}
	}); err != nil {
		logger.Log.Fatal().Err(err).Str("schedule", cfg.Audit.CleanupSchedule).Msg("Invalid audit cleanup schedule")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Diamond Store Admin API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	routes.Setup(app, &routes.Dependencies{
		Config:    cfg,
		API:       api.NewClient(cfg.API.BaseURL, cfg.API.Timeout),
		Database:  db,
		Receipts:  repositories.NewReceiptRepository(db.DB),
		Audit:     auditService,
		Scheduler: sched,
		Hub:       services.NewEventHub(),
	})

	// Graceful shutdown
	go gracefulShutdown(app, sched, db)

	logger.Log.Info().
		Str("port", cfg.Port).
		Str("mode", cfg.AppMode).
		Str("api", cfg.API.BaseURL).
		Msg("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to start server")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, sched *scheduler.Scheduler, db *config.Database) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.Error().Err(err).Msg("Error during shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sched.Stop(ctx)

	if err := db.Close(); err != nil {
		logger.Log.Error().Err(err).Msg("Error closing database")
	}
	logger.Log.Info().Msg("Server stopped gracefully")
}
