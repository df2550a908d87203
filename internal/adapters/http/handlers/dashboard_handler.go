package handlers

import (
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Summary returns the landing page counters
// @Summary Admin Dashboard
// @Description Pending/approved users, total points, pending/rejected orders and pending diamonds
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	data, err := h.dashboardService.Summary(requestCtx(c), sess)
	if err != nil {
		return respondError(c, err, "Failed to get dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}
