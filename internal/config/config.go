package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// defaultSessionSecret is only acceptable in dev mode
const defaultSessionSecret = "default_session_secret"

// Config holds all configuration for the application
type Config struct {
	AppMode        string `env:"APP_MODE" env-default:"dev"`
	Port           string `env:"PORT" env-default:"3000"`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	API          APIConfig
	Database     DatabaseConfig
	Session      SessionConfig
	Cookie       CookieConfig
	Refresh      RefreshConfig
	Search       SearchConfig
	Transactions TransactionsConfig
	Audit        AuditConfig
}

// APIConfig points at the remote REST API that owns all data
type APIConfig struct {
	BaseURL    string        `env:"API_BASE_URL" env-default:"http://localhost:5000/api"`
	Timeout    time.Duration `env:"API_TIMEOUT" env-default:"10s"`
	UploadsURL string        `env:"UPLOADS_BASE_URL"`
}

// DatabaseConfig holds the audit/receipt database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"3306"`
	User     string `env:"DB_USER" env-default:"root"`
	Password string `env:"DB_PASS"`
	DBName   string `env:"DB_NAME" env-default:"diamond_store_admin"`
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret  string `env:"SESSION_SECRET" env-default:"default_session_secret"`
	TTLDays int    `env:"SESSION_TTL_DAYS" env-default:"7"`
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Name     string `env:"COOKIE_NAME" env-default:"token"`
	Secure   bool   `env:"COOKIE_SECURE" env-default:"false"`
	SameSite string `env:"COOKIE_SAMESITE" env-default:"Lax"`
	Domain   string `env:"COOKIE_DOMAIN"`
}

// RefreshConfig controls the pending-orders refresh stream.
// An interval of zero disables polling; mutation broadcasts still flow.
// The scheduler works in whole seconds, so a non-zero interval must be at least 1s.
type RefreshConfig struct {
	OrderInterval time.Duration `env:"ORDER_REFRESH_INTERVAL" env-default:"2s"`
	Timeout       time.Duration `env:"ORDER_REFRESH_TIMEOUT" env-default:"5s"`
}

// SearchConfig tunes the search-term classifier
type SearchConfig struct {
	UserIDMaxDigits int `env:"SEARCH_USER_ID_MAX_DIGITS" env-default:"3"`
}

// TransactionsConfig bounds the transaction history window
type TransactionsConfig struct {
	DefaultLimit int `env:"TRANSACTIONS_DEFAULT_LIMIT" env-default:"100"`
	MaxLimit     int `env:"TRANSACTIONS_MAX_LIMIT" env-default:"500"`
}

// AuditConfig holds audit log retention settings
type AuditConfig struct {
	RetentionDays   int    `env:"AUDIT_RETENTION_DAYS" env-default:"90"`
	CleanupSchedule string `env:"AUDIT_CLEANUP_SCHEDULE" env-default:"0 3 * * *"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional, production injects the environment directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	cfg.AppMode = strings.TrimSpace(cfg.AppMode)
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate collects every configuration problem into one error
func (c *Config) validate() error {
	var errs []string

	if c.AppMode != "dev" && c.AppMode != "prod" {
		errs = append(errs, fmt.Sprintf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", c.AppMode))
	}

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("API_BASE_URL must be an absolute URL, got '%s'", c.API.BaseURL))
	}

	if c.IsProd() && (c.Session.Secret == "" || c.Session.Secret == defaultSessionSecret) {
		errs = append(errs, "SESSION_SECRET must be set in prod mode")
	}

	if c.Session.TTLDays < 1 {
		errs = append(errs, "SESSION_TTL_DAYS must be at least 1")
	}

	if c.Refresh.OrderInterval < 0 || (c.Refresh.OrderInterval > 0 && c.Refresh.OrderInterval < time.Second) {
		errs = append(errs, fmt.Sprintf("ORDER_REFRESH_INTERVAL must be 0 or at least 1s, got %s", c.Refresh.OrderInterval))
	}

	if c.Search.UserIDMaxDigits < 1 {
		errs = append(errs, "SEARCH_USER_ID_MAX_DIGITS must be at least 1")
	}

	if c.Transactions.MaxLimit < 1 || c.Transactions.DefaultLimit < 1 || c.Transactions.DefaultLimit > c.Transactions.MaxLimit {
		errs = append(errs, "TRANSACTIONS_DEFAULT_LIMIT must be between 1 and TRANSACTIONS_MAX_LIMIT")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:3000"
	}
	return c.AllowedOrigins
}
