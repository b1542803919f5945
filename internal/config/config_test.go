package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 5000}
		assert.Equal(t, ":5000", cfg.Addr())
	})

	t.Run("From prefers EMAIL_FROM", func(t *testing.T) {
		cfg := &Config{EmailFrom: "noreply@stepupp.com", EmailUser: "ops@stepupp.com"}
		assert.Equal(t, "noreply@stepupp.com", cfg.From())
	})

	t.Run("From falls back to EMAIL_USER", func(t *testing.T) {
		cfg := &Config{EmailUser: "ops@stepupp.com"}
		assert.Equal(t, "ops@stepupp.com", cfg.From())
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":          os.Getenv("PORT"),
		"JWT_SECRET":    os.Getenv("JWT_SECRET"),
		"DATA_DIR":      os.Getenv("DATA_DIR"),
		"FRONTEND_URL":  os.Getenv("FRONTEND_URL"),
		"DISABLE_EMAIL": os.Getenv("DISABLE_EMAIL"),
		"LOG_LEVEL":     os.Getenv("LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		os.Unsetenv("PORT")
		os.Unsetenv("DATA_DIR")
		os.Unsetenv("FRONTEND_URL")
		os.Unsetenv("DISABLE_EMAIL")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5000, cfg.Port)
		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
		assert.False(t, cfg.DisableEmail)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("fails without JWT_SECRET", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "test-secret")
		os.Setenv("PORT", "8080")
		os.Setenv("DISABLE_EMAIL", "true")
		os.Setenv("FRONTEND_URL", "https://stepupp.example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.True(t, cfg.DisableEmail)
		assert.Equal(t, "https://stepupp.example.com", cfg.FrontendURL)
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects short secret in production", func(t *testing.T) {
		cfg := &Config{JWTSecret: "short", DisableEmail: true}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("rejects known weak secret in production", func(t *testing.T) {
		cfg := &Config{JWTSecret: "your-secret-key-change-in-production", DisableEmail: true}
		assert.Error(t, cfg.Validate(true))
	})

	t.Run("accepts short secret outside production", func(t *testing.T) {
		cfg := &Config{JWTSecret: "dev", DisableEmail: true}
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("accepts strong secret in production", func(t *testing.T) {
		cfg := &Config{JWTSecret: "0123456789abcdef0123456789abcdef", DisableEmail: true}
		assert.NoError(t, cfg.Validate(true))
	})
}
