package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

const issuer = "diamond-store-admin"

// SessionClaims is the signed dashboard session. It carries the remote API
// bearer token so handlers can act on behalf of the admin.
type SessionClaims struct {
	AdminID       int64  `json:"admin_id"`
	Name          string `json:"name"`
	IDNumber      string `json:"id_number"`
	Role          string `json:"role"`
	UpstreamToken string `json:"upstream_token"`
	jwt.RegisteredClaims
}

// SessionInput is the identity a new session is issued for
type SessionInput struct {
	AdminID       int64
	Name          string
	IDNumber      string
	Role          string
	UpstreamToken string
}

// GenerateSessionToken signs a session that expires after ttl, or earlier
// when the upstream token itself expires first. It returns the expiry used.
func GenerateSessionToken(in SessionInput, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	if upstream, ok := UpstreamExpiry(in.UpstreamToken); ok && upstream.Before(expiresAt) {
		expiresAt = upstream
	}

	claims := SessionClaims{
		AdminID:       in.AdminID,
		Name:          in.Name,
		IDNumber:      in.IDNumber,
		Role:          in.Role,
		UpstreamToken: in.UpstreamToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   in.IDNumber,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateSessionToken validates a session token and returns claims
func ValidateSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// UpstreamExpiry reads the exp claim of the remote API token without
// verifying it. The remote API is the only party holding its key.
func UpstreamExpiry(tokenString string) (time.Time, bool) {
	if tokenString == "" {
		return time.Time{}, false
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
