package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/config"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	sessionKey      = "session"
	clearSessionKey = "clearSession"
)

// CurrentSession returns the session set by AuthMiddleware
func CurrentSession(c *fiber.Ctx) (*domain.Session, bool) {
	sess, ok := c.Locals(sessionKey).(*domain.Session)
	return sess, ok && sess != nil
}

// ExpireSession marks the session cookie for removal once the handler returns.
// Handlers call it when the remote API rejects the upstream token.
func ExpireSession(c *fiber.Ctx) {
	c.Locals(clearSessionKey, true)
}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(authService *services.AuthService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Try to get token from cookie first
		token := c.Cookies(cfg.Cookie.Name)

		// 2. If not in cookie, try Authorization header
		if token == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if token == "" {
			return unauthenticated(c, "Login required")
		}

		// 4. Validate token
		sess, err := authService.Authenticate(token)
		if err != nil {
			ClearSessionCookie(c, cfg)
			if errors.Is(err, domain.ErrSessionExpired) {
				return unauthenticated(c, "Session expired, please log in again")
			}
			return unauthenticated(c, "Invalid session")
		}

		// 5. Set session in context
		c.Locals(sessionKey, sess)
		c.Locals("role", string(sess.Role))

		err = c.Next()

		if expired, _ := c.Locals(clearSessionKey).(bool); expired {
			ClearSessionCookie(c, cfg)
		}
		return err
	}
}

// unauthenticated redirects browser navigations to the login page and
// answers API calls with 401
func unauthenticated(c *fiber.Ctx, message string) error {
	if c.Method() == fiber.MethodGet && c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return response.Unauthorized(c, message)
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// SetSessionCookie stores the session token. The cookie is Secure when
// configured or when the request arrived over HTTPS.
func SetSessionCookie(c *fiber.Ctx, cfg *config.Config, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Secure:   cfg.Cookie.Secure || c.Protocol() == "https",
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   cfg.Cookie.Secure || c.Protocol() == "https",
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}
