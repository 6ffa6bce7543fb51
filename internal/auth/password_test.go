package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasboard/tracker-service/internal/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("produces argon2id PHC hash", func(t *testing.T) {
		hash, err := auth.HashPassword("Password123@")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
		assert.NotEqual(t, "Password123@", hash)
	})

	t.Run("same password yields different hashes via salt", func(t *testing.T) {
		hash1, err := auth.HashPassword("samepassword")
		require.NoError(t, err)
		hash2, err := auth.HashPassword("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Run("round-trips the original plaintext", func(t *testing.T) {
		hash, err := auth.HashPassword("Password123@")
		require.NoError(t, err)

		ok, err := auth.VerifyPassword("Password123@", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("mismatch is false without error", func(t *testing.T) {
		hash, err := auth.HashPassword("Password123@")
		require.NoError(t, err)

		ok, err := auth.VerifyPassword("password123@", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed hash is an error", func(t *testing.T) {
		_, err := auth.VerifyPassword("whatever", "not-a-phc-string")
		assert.Error(t, err)
	})

	t.Run("unsupported algorithm is an error", func(t *testing.T) {
		_, err := auth.VerifyPassword("whatever", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported hash algorithm")
	})
}
