package response

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCarriesRequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(RequestIDKey, "req-42")
		return PreconditionRequired(c, "Confirmation required")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, "Confirmation required", body.Error)
	assert.Equal(t, "req-42", body.RequestID)
}

func TestSuccessOmitsError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Success(c, "ok", fiber.Map{"n": 1})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"ok","data":{"n":1}}`, string(raw))
}

func TestDownload(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return Download(c, "text/csv; charset=utf-8", "weekly-report-2024-01-01.csv", []byte("a,b\n"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `attachment; filename="weekly-report-2024-01-01.csv"`, resp.Header.Get(fiber.HeaderContentDisposition))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(raw))
}

func TestDownloadSanitizesFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "weekly-report-2026-10-05.csv", want: `attachment; filename="weekly-report-2026-10-05.csv"`},
		{in: "weekly\"; x=\"y.csv", want: `attachment; filename="weekly; x=y.csv"`},
		{in: "bad\r\nSet-Cookie: a=b.csv", want: `attachment; filename="badSet-Cookie: a=b.csv"`},
		{in: "../../etc/passwd", want: `attachment; filename="passwd"`},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return Download(c, "text/csv", tt.in, []byte("x"))
		})

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.Header.Get(fiber.HeaderContentDisposition), "%q", tt.in)
	}
}
