// Package response writes the JSON envelope shared by every API endpoint.
package response

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequestIDKey is the Locals key the request id middleware writes to
const RequestIDKey = "requestid"

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response tagged with the request id, so a failure
// reported from the dashboard can be found in the logs.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	id, _ := c.Locals(RequestIDKey).(string)
	return c.Status(statusCode).JSON(Response{
		Success:   false,
		Error:     message,
		RequestID: id,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// PreconditionRequired is sent when a destructive action arrives without confirm=true
func PreconditionRequired(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusPreconditionRequired, message)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// BadGateway reports a failed remote API call
func BadGateway(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadGateway, message)
}

// Download sends body as a file attachment
func Download(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	if name := safeFilename(filename); name != "" {
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	}
	return c.Send(body)
}

// safeFilename drops directories, quotes, backslashes and control characters
func safeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	name = filepath.Base(name)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
