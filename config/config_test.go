package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_HOST", "APP_PORT", "FRONTEND_URL", "PROVIDER_BASE_URL", "APP_DEBUG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "*", cfg.FrontendURL)
	assert.Equal(t, DefaultProviderBaseURL, cfg.ProviderBaseURL)
	assert.Equal(t, ":3000", cfg.ListenAddr())
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "8081")
	t.Setenv("PROVIDER_BASE_URL", "http://provider.local/v1/")
	t.Setenv("PROVIDER_API_KEY", "  0123456789abcdef0123456789abcdef ")
	t.Setenv("APP_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.ListenAddr())
	assert.Equal(t, "http://provider.local/v1", cfg.ProviderBaseURL)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.ProviderAPIKey)
	assert.True(t, cfg.Debug)
}
