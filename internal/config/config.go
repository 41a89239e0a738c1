// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, the course corpus database, and the LLM providers.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir string // Data directory for the SQLite course corpus

	// Search Configuration
	CandidateLimit int // Maximum course records fetched per ranking pass (default: 20)

	// LLM Configuration
	GeminiAPIKey string   // Gemini API key (empty = provider disabled)
	GroqAPIKey   string   // Groq API key (empty = provider disabled)
	GeminiModels []string // Ordered Gemini model chain (first = primary)
	GroqModels   []string // Ordered Groq model chain (first = primary)
	LLMTimeout   time.Duration

	// Sentry Configuration (Better Stack errors backend)
	SentryEnabled     bool
	SentryToken       string
	SentryHost        string
	SentryEnvironment string

	// Better Stack Log Shipping
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "3000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		DataDir: getEnv(EnvDataDir, "./data"),

		CandidateLimit: getIntEnv(EnvCandidateLimit, 20),

		GeminiAPIKey: getEnv(EnvGeminiAPIKey, ""),
		GroqAPIKey:   getEnv(EnvGroqAPIKey, ""),
		GeminiModels: getListEnv(EnvGeminiModels),
		GroqModels:   getListEnv(EnvGroqModels),
		LLMTimeout:   getDurationEnv(EnvLLMTimeout, 15*time.Second),

		SentryEnabled:     getBoolEnv(EnvSentryEnabled, false),
		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, "errors.betterstack.com"),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.CandidateLimit <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvCandidateLimit, c.CandidateLimit))
	}
	if c.LLMTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvLLMTimeout, c.LLMTimeout))
	}
	if c.SentryEnabled && c.SentryToken == "" {
		errs = append(errs, errors.New(EnvSentryToken+" is required when Sentry is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the SQLite course corpus file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "courses.db")
}

// placeholderKeys are values commonly left in .env templates.
// A key matching one of these is treated as absent.
var placeholderKeys = []string{
	"your-api-key",
	"your_api_key",
	"changeme",
	"change-me",
	"placeholder",
	"xxx",
	"todo",
}

// minAPIKeyLength is the shortest key any supported provider issues.
// Anything shorter is a typo or a truncated paste, not a real key.
const minAPIKeyLength = 20

// IsUsableAPIKey reports whether the key looks like a real provider key
// rather than a template placeholder or a truncated value.
func IsUsableAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	if len(key) < minAPIKeyLength {
		return false
	}
	lower := strings.ToLower(key)
	for _, p := range placeholderKeys {
		if strings.Contains(lower, p) {
			return false
		}
	}
	return true
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv retrieves a comma-separated list environment variable.
// Returns nil when unset so callers can apply their own defaults.
func getListEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
