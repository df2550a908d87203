package handlers

import (
	"context"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/scheduler"

	"github.com/gofiber/fiber/v2"
)

// Pinger is a dependency that can report its health
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	appMode   string
	database  Pinger
	api       Pinger
	hub       *services.EventHub
	scheduler *scheduler.Scheduler
}

// NewHealthHandler creates a new health handler. hub and sched may be nil.
func NewHealthHandler(appMode string, database, api Pinger, hub *services.EventHub, sched *scheduler.Scheduler) *HealthHandler {
	return &HealthHandler{
		appMode:   appMode,
		database:  database,
		api:       api,
		hub:       hub,
		scheduler: sched,
	}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "Diamond Store Admin API v1.0 is running",
		"mode":    h.appMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check the audit database and the remote API
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := check(ctx, "database", h.database)
	apiStatus := check(ctx, "api", h.api)
	if dbStatus == "unhealthy" || apiStatus == "unhealthy" {
		status = "degraded"
		c.Status(fiber.StatusServiceUnavailable)
	}

	streams, tasks := 0, 0
	if h.hub != nil {
		streams = h.hub.ClientCount()
	}
	if h.scheduler != nil {
		tasks = h.scheduler.Len()
	}

	return c.JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"database": dbStatus,
			"api":      apiStatus,
		},
		"streams":        streams,
		"scheduledTasks": tasks,
	})
}

func check(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		logger.Log.Warn().Err(err).Str("check", name).Msg("Health check failed")
		return "unhealthy"
	}
	return "healthy"
}
