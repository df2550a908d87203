package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func upstreamToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 1, "exp": exp.Unix()})
	signed, err := tok.SignedString([]byte("remote-api-key"))
	require.NoError(t, err)
	return signed
}

func TestSessionToken_RoundTrip(t *testing.T) {
	in := SessionInput{AdminID: 9, Name: "Admin", IDNumber: "200012345678", Role: "ADMIN", UpstreamToken: "opaque-token"}

	signed, exp, err := GenerateSessionToken(in, testSecret, 7*24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	claims, err := ValidateSessionToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.AdminID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "opaque-token", claims.UpstreamToken)
	assert.Equal(t, "200012345678", claims.Subject)
}

func TestSessionToken_CappedByUpstreamExpiry(t *testing.T) {
	upstreamExp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	in := SessionInput{AdminID: 1, Role: "ADMIN", UpstreamToken: upstreamToken(t, upstreamExp)}

	_, exp, err := GenerateSessionToken(in, testSecret, 7*24*time.Hour)
	require.NoError(t, err)
	assert.True(t, exp.Equal(upstreamExp), "got %s want %s", exp, upstreamExp)
}

func TestSessionToken_UpstreamLaterThanTTL(t *testing.T) {
	in := SessionInput{AdminID: 1, Role: "ADMIN", UpstreamToken: upstreamToken(t, time.Now().Add(30*24*time.Hour))}

	_, exp, err := GenerateSessionToken(in, testSecret, 24*time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, time.Minute)
}

func TestValidateSessionToken_Failures(t *testing.T) {
	in := SessionInput{AdminID: 1, Role: "ADMIN"}

	signed, _, err := GenerateSessionToken(in, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken(signed, "other-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateSessionToken("not-a-jwt", testSecret)
	require.ErrorIs(t, err, ErrTokenInvalid)

	expired, _, err := GenerateSessionToken(in, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateSessionToken(expired, testSecret)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestUpstreamExpiry(t *testing.T) {
	_, ok := UpstreamExpiry("")
	assert.False(t, ok)

	_, ok = UpstreamExpiry("opaque")
	assert.False(t, ok)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := UpstreamExpiry(upstreamToken(t, exp))
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}
