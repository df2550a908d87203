package handlers

import (
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/config"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	IDNumber string `json:"idNumber"`
	Password string `json:"password"`
}

// Login handles admin login
// @Summary Login admin
// @Description Authenticate against the remote API and open a dashboard session (admins only)
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.IDNumber == "" {
		return response.BadRequest(c, "ID number is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.Login(requestCtx(c), &services.LoginInput{
		IDNumber: req.IDNumber,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err, "Failed to login")
	}

	middleware.SetSessionCookie(c, h.cfg, result.SessionToken, result.ExpiresAt)

	return response.Success(c, "Login successful", result)
}

// Logout handles admin logout
// @Summary Logout admin
// @Description Clear the dashboard session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	middleware.ClearSessionCookie(c, h.cfg)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current admin
// @Summary Get current admin
// @Description Get the identity held by the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Session retrieved successfully", fiber.Map{
		"id":        sess.AdminID,
		"name":      sess.AdminName,
		"idNumber":  sess.IDNumber,
		"role":      sess.Role,
		"expiresAt": sess.ExpiresAt,
	})
}
