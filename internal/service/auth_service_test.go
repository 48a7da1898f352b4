package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, secret string, userID int64, ttl time.Duration) string {
	t.Helper()
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParseAccessToken(t *testing.T) {
	auth := NewAuthService(nil, zap.NewNop(), "test-secret", time.Hour, time.Hour)

	userID, err := auth.ParseAccessToken(signedToken(t, "test-secret", 42, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	auth := NewAuthService(nil, zap.NewNop(), "test-secret", time.Hour, time.Hour)

	_, err := auth.ParseAccessToken(signedToken(t, "other-secret", 42, time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenExpired(t *testing.T) {
	auth := NewAuthService(nil, zap.NewNop(), "test-secret", time.Hour, time.Hour)

	_, err := auth.ParseAccessToken(signedToken(t, "test-secret", 42, -time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	auth := NewAuthService(nil, zap.NewNop(), "test-secret", time.Hour, time.Hour)

	_, err := auth.ParseAccessToken("не токен вовсе")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
