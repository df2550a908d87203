// Package handlers holds the fiber handlers of the admin dashboard API.
package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/api"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatusRequest is the body of approve/reject/complete actions
type StatusRequest struct {
	Status  string `json:"status"`
	Confirm bool   `json:"confirm"`
}

// requestCtx carries the request id down to the audit log
func requestCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if id, ok := c.Locals(middleware.RequestIDKey).(string); ok && id != "" {
		ctx = services.WithRequestID(ctx, id)
	}
	return ctx
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// respondError maps a service error onto the response envelope. fallback is
// the message used for unexpected failures.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrConfirmationRequired):
		return response.PreconditionRequired(c, "Confirmation required: resend with confirm=true")
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidWeekStart):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, clientMessage(err))
	case errors.Is(err, domain.ErrNotAdmin):
		return response.Forbidden(c, "Access denied: admin account required")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, clientMessage(err))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid ID number or password")
	case errors.Is(err, domain.ErrSessionExpired):
		middleware.ExpireSession(c)
		return response.Unauthorized(c, "Session expired, please log in again")
	case errors.Is(err, domain.ErrUnauthorized):
		return response.Unauthorized(c, "Unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, clientMessage(err))
	case errors.Is(err, domain.ErrEmptyReport):
		return response.NotFound(c, "No sales recorded for this week")
	case errors.Is(err, domain.ErrUpstreamFailure):
		logger.Log.Error().Err(err).Str("path", c.Path()).Msg("Remote API failure")
		return response.BadGateway(c, fallback)
	default:
		logger.Log.Error().Err(err).Str("path", c.Path()).Msg(fallback)
		return response.InternalServerError(c, fallback)
	}
}

// clientMessage prefers the message the remote API sent
func clientMessage(err error) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return err.Error()
}
