package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/config"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/jwt"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"
)

// AuthService handles admin login and session validation
type AuthService struct {
	api AuthAPI
	cfg *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(api AuthAPI, cfg *config.Config) *AuthService {
	return &AuthService{
		api: api,
		cfg: cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	IDNumber string
	Password string
}

// LoginOutput is a freshly issued dashboard session
type LoginOutput struct {
	SessionToken string       `json:"-"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	Admin        *domain.User `json:"user"`
}

// Login authenticates against the remote API and issues a session for admins only
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	idNumber := strings.TrimSpace(input.IDNumber)
	if idNumber == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: ID number and password are required", domain.ErrInvalidInput)
	}

	// 1. Remote API checks the credentials
	result, err := s.api.Login(ctx, idNumber, input.Password)
	if err != nil {
		return nil, err
	}

	// 2. Only admins may use the dashboard
	if result.User.Role != domain.RoleAdmin {
		logger.Log.Warn().Int64("user_id", result.User.ID).Str("role", string(result.User.Role)).Msg("Non-admin login rejected")
		return nil, domain.ErrNotAdmin
	}

	// 3. Sign the session around the upstream token
	ttl := time.Duration(s.cfg.Session.TTLDays) * 24 * time.Hour
	token, expiresAt, err := jwt.GenerateSessionToken(jwt.SessionInput{
		AdminID:       result.User.ID,
		Name:          result.User.DisplayName(),
		IDNumber:      result.User.IDNumber,
		Role:          string(result.User.Role),
		UpstreamToken: result.Token,
	}, s.cfg.Session.Secret, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	if !expiresAt.After(time.Now()) {
		return nil, domain.ErrSessionExpired
	}

	logger.Log.Info().Int64("admin_id", result.User.ID).Time("expires_at", expiresAt).Msg("Admin logged in")

	admin := result.User
	return &LoginOutput{
		SessionToken: token,
		ExpiresAt:    expiresAt,
		Admin:        &admin,
	}, nil
}

// Authenticate validates a session token
func (s *AuthService) Authenticate(token string) (*domain.Session, error) {
	claims, err := jwt.ValidateSessionToken(token, s.cfg.Session.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrUnauthorized
	}

	sess := &domain.Session{
		Token:     claims.UpstreamToken,
		AdminID:   claims.AdminID,
		AdminName: claims.Name,
		IDNumber:  claims.IDNumber,
		Role:      domain.Role(claims.Role),
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
