package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates 64 character hex string", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		token1, _ := GenerateToken()
		token2, _ := GenerateToken()
		assert.NotEqual(t, token1, token2)
	})

	t.Run("generates valid hex", func(t *testing.T) {
		token, _ := GenerateToken()
		for _, c := range token {
			assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'))
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Run("hash verifies with the original password", func(t *testing.T) {
		hash, err := HashPassword("secret1")
		require.NoError(t, err)
		assert.NotEqual(t, "secret1", hash)
		assert.True(t, CheckPasswordHash("secret1", hash))
	})

	t.Run("hash rejects a different password", func(t *testing.T) {
		hash, err := HashPassword("secret1")
		require.NoError(t, err)
		assert.False(t, CheckPasswordHash("wrongpass", hash))
	})

	t.Run("same password produces different hashes", func(t *testing.T) {
		hash1, _ := HashPassword("secret1")
		hash2, _ := HashPassword("secret1")
		assert.NotEqual(t, hash1, hash2)
	})
}
