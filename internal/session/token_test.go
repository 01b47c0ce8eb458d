package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestExtractExpiry(t *testing.T) {
	t.Run("reads expiry claim", func(t *testing.T) {
		expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

		expiry, err := ExtractExpiry(makeToken(t, expiresAt))
		require.NoError(t, err)
		assert.True(t, expiry.Equal(expiresAt))
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := ExtractExpiry("not.a.token")
		require.ErrorIs(t, err, ErrTokenDecode)
	})

	t.Run("missing expiry claim", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "u1",
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = ExtractExpiry(token)
		require.ErrorIs(t, err, ErrTokenDecode)
	})
}
