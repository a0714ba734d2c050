// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/caremesh/caremesh/logging"
)

// Provider selects the decider backend.
type Provider string

// Supported providers.
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Config is the full runtime configuration.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string // provider model id; empty means the adapter default
	DBPath   string
	Logger   LoggerConfig
}

// LoggerConfig configures the slog-backed logger.
type LoggerConfig struct {
	Level  logging.LogLevel
	Format string // "text" or "json"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logging.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logging.LogLevelDebug
	case "info":
		return logging.LogLevelInfo
	case "warn", "warning":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}

func parseProvider(provider string) (Provider, error) {
	switch strings.ToLower(provider) {
	case "", "openai":
		return ProviderOpenAI, nil
	case "anthropic":
		return ProviderAnthropic, nil
	default:
		return "", fmt.Errorf("unsupported provider %q (want openai or anthropic)", provider)
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged first when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may be fully populated already.
	_ = godotenv.Load()

	provider, err := parseProvider(os.Getenv("CAREMESH_PROVIDER"))
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if provider == ProviderAnthropic {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return &Config{
		Provider: provider,
		APIKey:   apiKey,
		Model:    os.Getenv("CAREMESH_MODEL"),
		DBPath:   getEnvOrDefault("CAREMESH_DB_PATH", "health_assistant.db"),
		Logger: LoggerConfig{
			Level:  parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}, nil
}
