package handlers

import (
	"strings"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user review and points endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// AddPointsRequest represents add points request body. Amount is kept as
// text so "12.50" and 12.5 are both accepted.
type AddPointsRequest struct {
	Amount      flexString `json:"amount"`
	Description string     `json:"description"`
}

// ListPending returns registrations awaiting review
// @Summary List pending users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /users/pending [get]
func (h *UserHandler) ListPending(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	users, err := h.userService.ListPending(requestCtx(c), sess)
	if err != nil {
		return respondError(c, err, "Failed to get pending users")
	}

	return response.Success(c, "Pending users retrieved successfully", users)
}

// ListApproved returns approved users
// @Summary List approved users
// @Description Optional search by user id, ID number, name or email
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /users/approved [get]
func (h *UserHandler) ListApproved(c *fiber.Ctx) error {
	sess, _ := middleware.CurrentSession(c)

	users, err := h.userService.ListApproved(requestCtx(c), sess, c.Query("search"))
	if err != nil {
		return respondError(c, err, "Failed to get approved users")
	}

	return response.Success(c, "Approved users retrieved successfully", users)
}

// UpdateStatus approves or rejects a registration
// @Summary Approve or reject user
// @Description Rejection requires confirm=true
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body StatusRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 428 {object} response.Response
// @Router /users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sess, _ := middleware.CurrentSession(c)
	err = h.userService.UpdateStatus(requestCtx(c), sess, &services.UpdateUserStatusInput{
		UserID:  id,
		Status:  domain.UserStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		Confirm: req.Confirm,
	})
	if err != nil {
		return respondError(c, err, "Failed to update user status")
	}

	return response.Success(c, "User status updated successfully", fiber.Map{
		"id":     id,
		"status": strings.ToUpper(strings.TrimSpace(req.Status)),
	})
}

// AddPoints credits points to a user
// @Summary Add points
// @Description Amount must be a positive decimal; a receipt is returned and stored
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body AddPointsRequest true "Amount and description"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /users/{id}/points [post]
func (h *UserHandler) AddPoints(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req AddPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sess, _ := middleware.CurrentSession(c)
	result, err := h.userService.AddPoints(requestCtx(c), sess, &services.AddPointsInput{
		UserID:      id,
		Amount:      string(req.Amount),
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err, "Failed to add points")
	}

	return response.Success(c, "Points added successfully", result)
}
