package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/api"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: `{"amount":"12.50"}`, want: "12.50"},
		{raw: `{"amount":12.5}`, want: "12.5"},
		{raw: `{"amount":100}`, want: "100"},
		{raw: `{"amount":null}`, want: ""},
		{raw: `{}`, want: ""},
		{raw: `{"amount":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var req AddPointsRequest
			err := json.Unmarshal([]byte(tt.raw), &req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(req.Amount))
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: domain.ErrConfirmationRequired, want: http.StatusPreconditionRequired},
		{err: domain.ErrInvalidAmount, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: title is required", domain.ErrInvalidInput), want: http.StatusBadRequest},
		{err: &api.APIError{StatusCode: 422, Message: "bad status"}, want: http.StatusBadRequest},
		{err: domain.ErrNotAdmin, want: http.StatusForbidden},
		{err: &api.APIError{StatusCode: 403}, want: http.StatusForbidden},
		{err: domain.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{err: fmt.Errorf("wrapped: %w", &api.APIError{StatusCode: 401}), want: http.StatusUnauthorized},
		{err: &api.APIError{StatusCode: 404, Message: "Order not found"}, want: http.StatusNotFound},
		{err: domain.ErrEmptyReport, want: http.StatusNotFound},
		{err: &api.APIError{StatusCode: 503}, want: http.StatusBadGateway},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return respondError(c, tt.err, "Failed")
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestRespondErrorUsesRemoteMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, fmt.Errorf("failed to update order 4 status: %w", &api.APIError{StatusCode: 404, Message: "Order not found"}), "Failed")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Order not found", body.Error)
}
