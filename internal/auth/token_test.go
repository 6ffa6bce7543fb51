package auth_test

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasboard/tracker-service/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("user-1", "alice", "alice@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	tm := auth.NewTokenManager("", 60)

	_, _, err := tm.GenerateToken("user-1", "alice", "alice@example.com")
	assert.ErrorIs(t, err, auth.ErrNoSigningSecret)
}

func TestParseTokenFailures(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	t.Run("tampered signature rejected", func(t *testing.T) {
		token, _, err := tm.GenerateToken("user-1", "alice", "alice@example.com")
		require.NoError(t, err)

		// Flip a byte of the signature segment.
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		parts[2] = string(sig)

		_, err = tm.ParseToken(strings.Join(parts, "."))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := auth.NewTokenManager("other-secret", 60)
		token, _, err := other.GenerateToken("user-1", "alice", "alice@example.com")
		require.NoError(t, err)

		_, err = tm.ParseToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := tm.ParseToken("obviously.invalid.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
			UserID:   "user-1",
			Username: "alice",
			Email:    "alice@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		})
		signed, err := expired.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.ParseToken(signed)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unexpected signing method rejected", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "user-1"})
		signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = tm.ParseToken(signed)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
