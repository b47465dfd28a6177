package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/haventalk_test")
	t.Setenv("XAI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.x.ai/v1", cfg.XAIBaseURL)
	assert.Equal(t, "grok", cfg.XAIModel)
	assert.True(t, cfg.TranslationEnabled)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("XAI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_ShortJWTSecretRejected(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/haventalk_test")
	t.Setenv("XAI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/haventalk_test")
	t.Setenv("XAI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "9000")
	t.Setenv("TRANSLATION_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://app.haventalk.io, https://staging.haventalk.io")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.TranslationEnabled)
	assert.Equal(t, []string{"https://app.haventalk.io", "https://staging.haventalk.io"}, cfg.AllowedOrigins)
}
