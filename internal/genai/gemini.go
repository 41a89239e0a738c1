// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the Gemini implementation of the Generator interface.
package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/smartcampus/coursesearch/internal/logger"
)

// Generation parameters shared by both providers. Low temperature keeps
// the structured answer format stable across calls.
const (
	generationTemperature = 0.3
	generationMaxTokens   = 1024
)

// geminiGenerator produces answers using Google's Gemini API.
// It implements the Generator interface.
type geminiGenerator struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// newGeminiGenerator creates a new Gemini-based generator.
// Returns nil if apiKey is empty (provider disabled).
func newGeminiGenerator(ctx context.Context, apiKey, model string, log *logger.Logger) (*geminiGenerator, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: provider disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiModels[0]
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiGenerator{
		client: client,
		model:  model,
		log:    log.WithModule("genai"),
	}, nil
}

// Generate returns the model's text output for the prompt.
func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", fmt.Errorf("gemini generator not configured")
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](generationTemperature),
		MaxOutputTokens: generationMaxTokens,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		g.log.WithError(err).
			WithField("model", g.model).
			WithField("duration_ms", duration.Milliseconds()).
			Warn("gemini generation failed")
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.WriteString(part.Text)
		}
	}

	result := strings.TrimSpace(out.String())

	if resp.UsageMetadata != nil {
		g.log.WithFields(map[string]any{
			"model":         g.model,
			"input_tokens":  resp.UsageMetadata.PromptTokenCount,
			"output_tokens": resp.UsageMetadata.CandidatesTokenCount,
			"duration_ms":   duration.Milliseconds(),
			"output_length": len(result),
		}).Debug("gemini generation completed")
	}

	return result, nil
}

// Provider returns the provider type for this generator.
func (g *geminiGenerator) Provider() Provider {
	return ProviderGemini
}

// Close releases resources.
// Safe to call on nil receiver.
func (g *geminiGenerator) Close() error {
	if g == nil {
		return nil
	}
	// genai.Client does not require explicit cleanup in current SDK version
	return nil
}
