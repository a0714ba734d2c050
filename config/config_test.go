package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremesh/caremesh/logging"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CAREMESH_PROVIDER", "")
	t.Setenv("CAREMESH_MODEL", "")
	t.Setenv("CAREMESH_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "health_assistant.db", cfg.DBPath)
	assert.Equal(t, logging.LogLevelInfo, cfg.Logger.Level)
	assert.Equal(t, "text", cfg.Logger.Format)
}

func TestLoadAnthropicProvider(t *testing.T) {
	t.Setenv("CAREMESH_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	t.Setenv("CAREMESH_MODEL", "claude-3-5-sonnet-20241022")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Model)
	assert.Equal(t, logging.LogLevelDebug, cfg.Logger.Level)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("CAREMESH_PROVIDER", "cohere")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported provider")
}
