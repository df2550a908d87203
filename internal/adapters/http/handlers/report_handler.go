package handlers

import (
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles weekly report endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Weekly returns the weekly sales and reward report
// @Summary Weekly report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param weekStart query string false "Week start (YYYY-MM-DD), current week when empty"
// @Param search query string false "Filter the per-user breakdown"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /reports/weekly [get]
func (h *ReportHandler) Weekly(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	report, err := h.reportService.Weekly(requestCtx(c), sess, c.Query("weekStart"), c.Query("search"))
	if err != nil {
		return respondError(c, err, "Failed to get weekly report")
	}

	return response.Success(c, "Weekly report retrieved successfully", report)
}

// Chart renders the sales share pie chart
// @Summary Weekly sales chart
// @Tags Reports
// @Produce png
// @Security BearerAuth
// @Param weekStart query string false "Week start (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /reports/weekly/chart.png [get]
func (h *ReportHandler) Chart(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	png, err := h.reportService.Chart(requestCtx(c), sess, c.Query("weekStart"))
	if err != nil {
		return respondError(c, err, "Failed to render weekly chart")
	}

	return response.Download(c, "image/png", "", png)
}

// Export downloads the breakdown as CSV
// @Summary Export weekly report
// @Tags Reports
// @Produce text/csv
// @Security BearerAuth
// @Param weekStart query string false "Week start (YYYY-MM-DD)"
// @Param search query string false "Filter the per-user breakdown"
// @Success 200 {file} binary
// @Failure 400 {object} response.Response
// @Router /reports/weekly/export.csv [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	data, filename, err := h.reportService.Export(requestCtx(c), sess, c.Query("weekStart"), c.Query("search"))
	if err != nil {
		return respondError(c, err, "Failed to export weekly report")
	}

	return response.Download(c, "text/csv; charset=utf-8", filename, data)
}
