package routes

import (
	"context"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/handlers"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/persistence/repositories"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/config"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RemoteAPI is everything the dashboard needs from the remote REST API
type RemoteAPI interface {
	services.AuthAPI
	services.UserAPI
	services.OrderAPI
	services.TransactionAPI
	services.ReportAPI
	services.AnnouncementAPI
	Ping(ctx context.Context) error
}

// Dependencies are the long-lived objects owned by main
type Dependencies struct {
	Config    *config.Config
	API       RemoteAPI
	Database  handlers.Pinger
	Receipts  repositories.ReceiptRepository
	Audit     *services.AuditService
	Scheduler *scheduler.Scheduler
	Hub       *services.EventHub
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps *Dependencies) {
	cfg := deps.Config
	classifier := search.NewClassifier(cfg.Search.UserIDMaxDigits)

	// Initialize services
	authService := services.NewAuthService(deps.API, cfg)
	userService := services.NewUserService(deps.API, deps.Receipts, deps.Audit, deps.Hub, classifier, cfg.API.UploadsURL)
	orderService := services.NewOrderService(deps.API, deps.Audit, deps.Hub, cfg.API.UploadsURL)
	watchService := services.NewOrderWatchService(deps.API, deps.Hub, deps.Scheduler, cfg.Refresh.OrderInterval, cfg.Refresh.Timeout)
	transactionService := services.NewTransactionService(deps.API, classifier, cfg.Transactions.DefaultLimit, cfg.Transactions.MaxLimit)
	reportService := services.NewReportService(deps.API, classifier)
	announcementService := services.NewAnnouncementService(deps.API, deps.Audit, deps.Hub)
	dashboardService := services.NewDashboardService(deps.API, deps.API)
	receiptService := services.NewReceiptService(deps.Receipts)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, deps.Database, deps.API, deps.Hub, deps.Scheduler)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	orderHandler := handlers.NewOrderHandler(orderService, watchService, deps.Hub)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reportHandler := handlers.NewReportHandler(reportService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	receiptHandler := handlers.NewReceiptHandler(receiptService, deps.Audit)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1", middleware.NoCache())

	authMW := middleware.AuthMiddleware(authService, cfg)
	adminOnly := middleware.AdminOnly()

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, authMW)
	setupDashboardRoutes(apiV1.Group("/dashboard", authMW, adminOnly), dashboardHandler)
	setupUserRoutes(apiV1.Group("/users", authMW, adminOnly), userHandler)
	setupOrderRoutes(apiV1.Group("/orders", authMW, adminOnly), orderHandler)
	setupTransactionRoutes(apiV1.Group("/transactions", authMW, adminOnly), transactionHandler)
	setupReportRoutes(apiV1.Group("/reports", authMW, adminOnly), reportHandler)
	setupAnnouncementRoutes(apiV1.Group("/announcements", authMW, adminOnly), announcementHandler)
	setupReceiptRoutes(apiV1.Group("/receipts", authMW, adminOnly), apiV1.Group("/audit", authMW, adminOnly), receiptHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler, authMW fiber.Handler) {
	router.Post("/login", middleware.AuthRateLimiter(), h.Login)
	router.Post("/logout", h.Logout)
	router.Get("/me", authMW, h.Me)
}

func setupDashboardRoutes(router fiber.Router, h *handlers.DashboardHandler) {
	router.Get("/", h.Summary)
}

// setupUserRoutes configures user review and points routes
func setupUserRoutes(router fiber.Router, h *handlers.UserHandler) {
	router.Get("/pending", h.ListPending)
	router.Get("/approved", h.ListApproved)
	router.Patch("/:id/status", h.UpdateStatus)
	router.Post("/:id/points", h.AddPoints)
}

// setupOrderRoutes configures order routes
func setupOrderRoutes(router fiber.Router, h *handlers.OrderHandler) {
	router.Get("/pending", h.ListPending)
	router.Get("/rejected", h.ListRejected)
	router.Get("/stream", h.Stream)
	router.Patch("/:id/status", h.UpdateStatus)
}

func setupTransactionRoutes(router fiber.Router, h *handlers.TransactionHandler) {
	router.Get("/", h.List)
}

// setupReportRoutes configures weekly report routes
func setupReportRoutes(router fiber.Router, h *handlers.ReportHandler) {
	router.Get("/weekly", h.Weekly)
	router.Get("/weekly/chart.png", h.Chart)
	router.Get("/weekly/export.csv", h.Export)
}

// setupAnnouncementRoutes configures announcement routes
func setupAnnouncementRoutes(router fiber.Router, h *handlers.AnnouncementHandler) {
	router.Get("/", h.List)
	router.Post("/", h.Create)
	router.Put("/:id", h.Update)
	router.Patch("/:id/toggle", h.Toggle)
	router.Delete("/:id", h.Delete)
}

func setupReceiptRoutes(receipts, audit fiber.Router, h *handlers.ReceiptHandler) {
	receipts.Get("/", h.ListReceipts)
	receipts.Get("/:number", h.GetReceipt)
	audit.Get("/", h.ListAudit)
}
