package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "dev", cfg.AppMode)
		require.Equal(t, "3000", cfg.Port)
		require.Equal(t, "token", cfg.Cookie.Name)
		require.Equal(t, "Lax", cfg.Cookie.SameSite)
		require.Equal(t, 7, cfg.Session.TTLDays)
		require.Equal(t, 2*time.Second, cfg.Refresh.OrderInterval)
		require.Equal(t, 3, cfg.Search.UserIDMaxDigits)
		require.Equal(t, 100, cfg.Transactions.DefaultLimit)
		require.Equal(t, 500, cfg.Transactions.MaxLimit)
		require.True(t, cfg.IsDev())
	})

	t.Run("loads API config from env", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.example.com/api/")
		t.Setenv("API_TIMEOUT", "3s")
		t.Setenv("UPLOADS_BASE_URL", "https://cdn.example.com")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
		require.Equal(t, 3*time.Second, cfg.API.Timeout)
		require.Equal(t, "https://cdn.example.com", cfg.API.UploadsURL)
	})

	t.Run("zero refresh interval disables polling", func(t *testing.T) {
		t.Setenv("ORDER_REFRESH_INTERVAL", "0s")

		cfg, err := Load()
		require.NoError(t, err)
		require.Zero(t, cfg.Refresh.OrderInterval)
	})

	t.Run("rejects sub-second refresh interval", func(t *testing.T) {
		t.Setenv("ORDER_REFRESH_INTERVAL", "500ms")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "ORDER_REFRESH_INTERVAL")
	})

	t.Run("rejects unknown app mode", func(t *testing.T) {
		t.Setenv("APP_MODE", "staging")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "APP_MODE")
	})

	t.Run("requires session secret in prod", func(t *testing.T) {
		t.Setenv("APP_MODE", "prod")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("accepts prod with secret", func(t *testing.T) {
		t.Setenv("APP_MODE", "prod")
		t.Setenv("SESSION_SECRET", "s3cr3t-value")

		cfg, err := Load()
		require.NoError(t, err)
		require.True(t, cfg.IsProd())
	})

	t.Run("rejects relative API URL", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "/api")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "API_BASE_URL")
	})

	t.Run("reports every problem at once", func(t *testing.T) {
		t.Setenv("APP_MODE", "prod")
		t.Setenv("SEARCH_USER_ID_MAX_DIGITS", "0")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "SESSION_SECRET")
		require.Contains(t, err.Error(), "SEARCH_USER_ID_MAX_DIGITS")
	})

	t.Run("rejects default limit above max", func(t *testing.T) {
		t.Setenv("TRANSACTIONS_DEFAULT_LIMIT", "600")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "TRANSACTIONS_DEFAULT_LIMIT")
	})
}

func TestGetAllowedOrigins(t *testing.T) {
	t.Run("dev allows all", func(t *testing.T) {
		cfg := &Config{AppMode: "dev"}
		require.Equal(t, "*", cfg.GetAllowedOrigins())
	})

	t.Run("explicit origins win", func(t *testing.T) {
		cfg := &Config{AppMode: "prod", AllowedOrigins: "https://admin.example.com"}
		require.Equal(t, "https://admin.example.com", cfg.GetAllowedOrigins())
	})
}
