package handlers

import (
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
	}
}

// AnnouncementRequest represents create/update request body
type AnnouncementRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	IsActive *bool  `json:"isActive"`
}

func (r *AnnouncementRequest) input() *services.AnnouncementInput {
	return &services.AnnouncementInput{
		Title:    r.Title,
		Message:  r.Message,
		Type:     domain.AnnouncementType(r.Type),
		IsActive: r.IsActive,
	}
}

// List returns every announcement
// @Summary List announcements
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	list, err := h.announcementService.List(requestCtx(c), sess)
	if err != nil {
		return respondError(c, err, "Failed to get announcements")
	}

	return response.Success(c, "Announcements retrieved successfully", list)
}

// Create creates an announcement
// @Summary Create announcement
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AnnouncementRequest true "Announcement"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sess, _ := middleware.CurrentSession(c)
	created, err := h.announcementService.Create(requestCtx(c), sess, req.input())
	if err != nil {
		return respondError(c, err, "Failed to create announcement")
	}

	return response.Created(c, "Announcement created successfully", created)
}

// Update replaces an announcement
// @Summary Update announcement
// @Description isActive is kept when omitted
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param body body AnnouncementRequest true "Announcement"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	var req AnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sess, _ := middleware.CurrentSession(c)
	updated, err := h.announcementService.Update(requestCtx(c), sess, id, req.input())
	if err != nil {
		return respondError(c, err, "Failed to update announcement")
	}

	return response.Success(c, "Announcement updated successfully", updated)
}

// Toggle flips the active flag
// @Summary Toggle announcement
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /announcements/{id}/toggle [patch]
func (h *AnnouncementHandler) Toggle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	sess, _ := middleware.CurrentSession(c)
	updated, err := h.announcementService.Toggle(requestCtx(c), sess, id)
	if err != nil {
		return respondError(c, err, "Failed to toggle announcement")
	}

	return response.Success(c, "Announcement toggled successfully", updated)
}

// Delete removes an announcement
// @Summary Delete announcement
// @Description Requires confirm=true
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} response.Response
// @Failure 428 {object} response.Response
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid announcement ID")
	}

	sess, _ := middleware.CurrentSession(c)
	if err := h.announcementService.Delete(requestCtx(c), sess, id, c.QueryBool("confirm")); err != nil {
		return respondError(c, err, "Failed to delete announcement")
	}

	return response.Success(c, "Announcement deleted successfully", nil)
}
