// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Server
	EnvPort            = "CAMPUS_PORT"
	EnvLogLevel        = "CAMPUS_LOG_LEVEL"
	EnvShutdownTimeout = "CAMPUS_SHUTDOWN_TIMEOUT"

	// Data
	EnvDataDir = "CAMPUS_DATA_DIR"

	// Search
	EnvCandidateLimit = "CAMPUS_CANDIDATE_LIMIT"

	// LLM Feature
	EnvGeminiAPIKey = "CAMPUS_GEMINI_API_KEY"
	EnvGroqAPIKey   = "CAMPUS_GROQ_API_KEY"
	EnvGeminiModels = "CAMPUS_GEMINI_MODELS"
	EnvGroqModels   = "CAMPUS_GROQ_MODELS"
	EnvLLMTimeout   = "CAMPUS_LLM_TIMEOUT"

	// Sentry Feature
	EnvSentryEnabled     = "CAMPUS_SENTRY_ENABLED"
	EnvSentryToken       = "CAMPUS_SENTRY_TOKEN"
	EnvSentryHost        = "CAMPUS_SENTRY_HOST"
	EnvSentryEnvironment = "CAMPUS_SENTRY_ENVIRONMENT"

	// Better Stack Feature
	EnvBetterStackToken    = "CAMPUS_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "CAMPUS_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsUsername = "CAMPUS_METRICS_USERNAME"
	EnvMetricsPassword = "CAMPUS_METRICS_PASSWORD"
)
