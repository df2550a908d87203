package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/api"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/adapters/http/middleware"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/config"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services/mocks"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app       *fiber.App
	api       *mocks.API
	audit     *mocks.AuditRepository
	receipts  *mocks.ReceiptRepository
	hub       *services.EventHub
	scheduler *scheduler.Scheduler
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppMode:      "dev",
		Session:      config.SessionConfig{Secret: "routes-test-secret", TTLDays: 7},
		Cookie:       config.CookieConfig{Name: "token", SameSite: "Lax"},
		Refresh:      config.RefreshConfig{Timeout: time.Second},
		Search:       config.SearchConfig{UserIDMaxDigits: search.DefaultUserIDMaxDigits},
		Transactions: config.TransactionsConfig{DefaultLimit: 100, MaxLimit: 500},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	env := &testEnv{
		api:       mocks.NewAPI(),
		audit:     &mocks.AuditRepository{},
		receipts:  &mocks.ReceiptRepository{},
		hub:       services.NewEventHub(),
		scheduler: scheduler.New(),
	}
	env.api.LoginResult = &domain.LoginResult{
		Token: "upstream-token",
		User:  domain.User{ID: 1, Name: "Root Admin", IDNumber: "200000000001", Role: domain.RoleAdmin},
	}

	env.app = fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(env.app, &Dependencies{
		Config:    cfg,
		API:       env.api,
		Receipts:  env.receipts,
		Audit:     services.NewAuditService(env.audit, 90),
		Scheduler: env.scheduler,
		Hub:       env.hub,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body, cookie string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", "token="+cookie)
	}

	resp, err := e.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/api/v1/auth/login", `{"idNumber":"200000000001","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c.Value
		}
	}
	t.Fatal("login did not set the session cookie")
	return ""
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("admin gets an http-only cookie", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		resp := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"idNumber":"200000000001","password":"secret"}`, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		setCookie := resp.Header.Get("Set-Cookie")
		assert.True(t, strings.HasPrefix(setCookie, "token="))
		assert.Contains(t, setCookie, "HttpOnly")
		assert.Contains(t, strings.ToLower(setCookie), "samesite=lax")

		body := decode(t, resp)
		assert.True(t, body.Success)
		assert.NotContains(t, string(body.Data), "upstream-token")
	})

	t.Run("non admin is refused without a cookie", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.api.LoginResult = &domain.LoginResult{Token: "t", User: domain.User{ID: 9, Role: domain.RoleUser}}

		resp := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"idNumber":"1","password":"secret"}`, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("Set-Cookie"))
	})

	t.Run("missing password", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		resp := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"idNumber":"1"}`, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.api.LoginErr = domain.ErrInvalidCredentials
		resp := env.do(t, http.MethodPost, "/api/v1/auth/login", `{"idNumber":"1","password":"nope"}`, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthGate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/v1/users/pending", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/pending", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/api/v1/users/pending", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := env.login(t)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = env.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(decode(t, resp).Data), "Root Admin")
}

func TestRemoteUnauthorizedClearsCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)
	env.api.ListErr = &api.APIError{StatusCode: http.StatusUnauthorized, Message: "jwt expired"}

	resp := env.do(t, http.MethodGet, "/api/v1/orders/pending", "", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "token=;")
}

func TestUserStatusConfirmation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)

	resp := env.do(t, http.MethodPatch, "/api/v1/users/7/status", `{"status":"REJECTED"}`, token)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)
	assert.Empty(t, env.api.Calls())

	resp = env.do(t, http.MethodPatch, "/api/v1/users/7/status", `{"status":"rejected","confirm":true}`, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/users/7/status", `{"status":"APPROVED"}`, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/users/abc/status", `{"status":"APPROVED"}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	calls := env.api.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "REJECTED", calls[0].Status)
	assert.Equal(t, "upstream-token", calls[0].Token)
	assert.Len(t, env.audit.Entries(), 2)
}

func TestAddPoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)
	env.api.Approved = []domain.User{{ID: 3, Name: "Kasun", IDNumber: "981234567V"}}
	env.api.PointsResult = &domain.PointsResult{Balance: decimal.NewFromInt(125)}

	for _, body := range []string{`{"amount":"abc"}`, `{"amount":0}`, `{"amount":"-4"}`, `{}`} {
		resp := env.do(t, http.MethodPost, "/api/v1/users/3/points", body, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
	assert.Empty(t, env.api.Calls())

	resp := env.do(t, http.MethodPost, "/api/v1/users/3/points", `{"amount":25,"description":"Top-up bonus"}`, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.PointsResult
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &result))
	require.NotNil(t, result.Receipt)
	assert.Equal(t, "Kasun", result.Receipt.ReceiverName)
	assert.True(t, decimal.NewFromInt(25).Equal(result.Receipt.Amount))

	resp = env.do(t, http.MethodGet, "/api/v1/receipts/"+result.Receipt.ReceiptNumber, "", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/receipts/RCPT-MISSING", "", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/audit?page=1&limit=10", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &page))
	assert.Equal(t, int64(1), page.Meta.Total)
}

func TestTransactionsQuery(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)

	resp := env.do(t, http.MethodGet, "/api/v1/transactions?search=42&limit=9999", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, search.Filter{Kind: search.KindUserID, Value: "42"}, env.api.LastFilter)
	assert.Equal(t, 500, env.api.LastLimit)

	resp = env.do(t, http.MethodGet, "/api/v1/transactions?search=42&email=a@b.lk", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, search.KindEmail, env.api.LastFilter.Kind)
	assert.Equal(t, 100, env.api.LastLimit)
}

func TestReports(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)
	env.api.Report = &domain.WeeklyReport{
		WeekStart: "2026-10-05",
		WeekEnd:   "2026-10-11",
		Users: []domain.WeeklyUserReport{
			{UserID: 1, Name: "Amal", Sales: decimal.NewFromInt(300), Orders: 1},
			{UserID: 2, Name: "Bimal", Sales: decimal.NewFromInt(100), Orders: 1},
		},
	}

	resp := env.do(t, http.MethodGet, "/api/v1/reports/weekly?weekStart=last-week", "", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, env.api.Reads())

	resp = env.do(t, http.MethodGet, "/api/v1/reports/weekly?weekStart=2026-10-05", "", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/v1/reports/weekly/chart.png?weekStart=2026-10-05", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp = env.do(t, http.MethodGet, "/api/v1/reports/weekly/export.csv?weekStart=2026-10-05", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "weekly-report-2026-10-05.csv")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TOTAL,,,,,2,0,400.00,0.00")
}

func TestAnnouncements(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)

	resp := env.do(t, http.MethodPost, "/api/v1/announcements", `{"title":"","message":"x"}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/v1/announcements", `{"title":"Maintenance","message":"Back at 10pm","type":"warning"}`, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/announcements/1/toggle", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled domain.Announcement
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &toggled))
	assert.False(t, toggled.IsActive)

	resp = env.do(t, http.MethodDelete, "/api/v1/announcements/1", "", token)
	assert.Equal(t, http.StatusPreconditionRequired, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/v1/announcements/1?confirm=true", "", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodPatch, "/api/v1/announcements/99/toggle", "", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardAndHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)
	env.api.Pending = []domain.User{{ID: 1}}
	env.api.PendingOrd = []domain.Order{{ID: 5, Quantity: 120}}

	resp := env.do(t, http.MethodGet, "/api/v1/dashboard", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary services.DashboardSummary
	require.NoError(t, json.Unmarshal(decode(t, resp).Data, &summary))
	assert.Equal(t, 1, summary.PendingUsers)
	assert.Equal(t, int64(120), summary.PendingDiamonds)

	resp = env.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		Status         string `json:"status"`
		Streams        int    `json:"streams"`
		ScheduledTasks int    `json:"scheduledTasks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Zero(t, health.Streams)
	assert.Zero(t, health.ScheduledTasks)

	env.api.PingErr = domain.ErrUpstreamFailure
	resp = env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestOrderStreamEndsOnSessionExpiry(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.login(t)
	env.api.ListErr = domain.ErrSessionExpired

	resp := env.do(t, http.MethodGet, "/api/v1/orders/stream", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, "event: session_expired")
	assert.Less(t, strings.Index(body, "event: connected"), strings.Index(body, "event: session_expired"))
}

func TestOrderStreamCancelsPollTaskWhenItEnds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Refresh.OrderInterval = time.Second
	})
	token := env.login(t)
	env.api.ListErr = domain.ErrSessionExpired

	resp := env.do(t, http.MethodGet, "/api/v1/orders/stream", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "event: session_expired")

	// the stream ended, so its poll task and hub client are gone
	require.Eventually(t, func() bool {
		return env.scheduler.Len() == 0 && env.hub.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
