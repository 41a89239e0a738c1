// Package genai provides integration with LLM APIs (Gemini and Groq) for
// answer generation over ranked course candidates.
//
// Architecture:
// - Gemini: Uses google.golang.org/genai (official SDK)
// - Groq: Uses github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Fallback strategy (3-layer):
// 1. Model retry: same model retried with exponential backoff
// 2. Model chain: next model in the same provider's list
// 3. Provider chain: next configured provider
package genai

import (
	"context"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers.
// Gemini is not included as it uses a different SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq: "https://api.groq.com/openai/v1/",
}

// IsOpenAICompatible returns true if the provider uses OpenAI-compatible API.
func (p Provider) IsOpenAICompatible() bool {
	_, ok := ProviderEndpoint[p]
	return ok
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Generator produces a free-form completion for a prompt.
// Implementations include Gemini (native SDK) and Groq (OpenAI-compatible).
type Generator interface {
	// Generate returns the model's text output for the prompt.
	// An empty string with a nil error means the model produced no text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
	// Close releases any resources held by the generator.
	Close() error
}

// RetryConfig defines retry behavior for LLM API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int
	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration
	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// ProviderConfig holds configuration for a single LLM provider.
type ProviderConfig struct {
	// APIKey is the API key for the provider. Empty disables the provider.
	APIKey string
	// Models is the ordered model chain. First model is primary, the rest
	// are fallbacks tried in order.
	Models []string
}

// Config holds configuration for all LLM providers.
type Config struct {
	// Providers is the ordered list of providers to try.
	Providers []Provider

	Gemini ProviderConfig
	Groq   ProviderConfig

	Retry RetryConfig
}

// Default model configurations.
// First element is primary model, subsequent elements are fallbacks.
var (
	// DefaultGeminiModels is the default model chain for Gemini.
	// gemini-2.5-flash handles the structured answer format reliably;
	// gemini-2.5-flash-lite is the cost-efficient fallback.
	DefaultGeminiModels = []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}

	// DefaultGroqModels is the default model chain for Groq.
	// llama-3.3-70b-versatile is production-grade with strong formatting
	// adherence; llama-3.1-8b-instant is the fast fallback.
	DefaultGroqModels = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}

	// DefaultProviders is the default provider order for fallback.
	DefaultProviders = []Provider{ProviderGemini, ProviderGroq}
)

// Retry configuration defaults
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}

// HasProvider returns true if the specified provider has an API key.
func (c *Config) HasProvider(p Provider) bool {
	switch p {
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderGroq:
		return c.Groq.APIKey != ""
	default:
		return false
	}
}

// GetProviderConfig returns the configuration for a specific provider.
func (c *Config) GetProviderConfig(p Provider) *ProviderConfig {
	switch p {
	case ProviderGemini:
		return &c.Gemini
	case ProviderGroq:
		return &c.Groq
	default:
		return nil
	}
}

// ConfiguredProviders returns the providers with API keys, in the order
// specified by c.Providers (defaulting to DefaultProviders).
func (c *Config) ConfiguredProviders() []Provider {
	order := c.Providers
	if len(order) == 0 {
		order = DefaultProviders
	}
	result := make([]Provider, 0, len(order))
	for _, p := range order {
		if c.HasProvider(p) {
			result = append(result, p)
		}
	}
	return result
}
