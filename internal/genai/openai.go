// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the unified OpenAI-compatible implementation of the
// Generator interface. It works with any OpenAI-compatible provider via
// custom BaseURL; Groq is the only one wired today.
package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/smartcampus/coursesearch/internal/logger"
)

// openaiGenerator produces answers via an OpenAI-compatible chat API.
// It implements the Generator interface.
type openaiGenerator struct {
	client   openai.Client
	model    string
	provider Provider
	log      *logger.Logger
}

// newOpenAIGenerator creates a new OpenAI-compatible generator.
// Returns nil if apiKey is empty (provider disabled).
func newOpenAIGenerator(_ context.Context, provider Provider, apiKey, model string, log *logger.Logger) (*openaiGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}

	if model == "" {
		switch provider {
		case ProviderGroq:
			model = DefaultGroqModels[0]
		default:
			return nil, fmt.Errorf("no default model for provider: %s", provider)
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiGenerator{
		client:   client,
		model:    model,
		provider: provider,
		log:      log.WithModule("genai"),
	}, nil
}

// Generate returns the model's text output for the prompt.
func (g *openaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil {
		return "", fmt.Errorf("generator not configured")
	}

	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(generationTemperature),
		MaxTokens:   openai.Int(generationMaxTokens),
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		g.log.WithError(err).
			WithField("provider", g.provider).
			WithField("model", g.model).
			WithField("duration_ms", duration.Milliseconds()).
			Warn("chat completion failed")
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)

	if resp.Usage.TotalTokens > 0 {
		g.log.WithFields(map[string]any{
			"provider":      g.provider,
			"model":         g.model,
			"input_tokens":  resp.Usage.PromptTokens,
			"output_tokens": resp.Usage.CompletionTokens,
			"duration_ms":   duration.Milliseconds(),
			"output_length": len(result),
		}).Debug("chat completion completed")
	}

	return result, nil
}

// Provider returns the provider type for this generator.
func (g *openaiGenerator) Provider() Provider {
	if g == nil {
		return ""
	}
	return g.provider
}

// Close releases resources.
// Safe to call on nil receiver.
func (g *openaiGenerator) Close() error {
	return nil
}
