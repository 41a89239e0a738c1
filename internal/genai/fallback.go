// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the fallback wrapper for cross-provider failover.
package genai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartcampus/coursesearch/internal/logger"
)

// MetricsRecorder records LLM call outcomes.
type MetricsRecorder interface {
	RecordLLMRequest(provider, status string, duration float64)
}

// FallbackGenerator wraps an ordered chain of generators.
// It implements three-layer fallback:
// 1. Model retry with backoff (same generator)
// 2. Chain fallback (next model, then next provider)
// 3. Graceful degradation (error surfaces to the caller, who synthesizes)
type FallbackGenerator struct {
	chain       []Generator
	retryConfig RetryConfig
	log         *logger.Logger
	metrics     MetricsRecorder
}

// NewFallbackGenerator creates a fallback-enabled generator over the chain.
// metrics may be nil.
func NewFallbackGenerator(cfg RetryConfig, log *logger.Logger, metrics MetricsRecorder, chain ...Generator) *FallbackGenerator {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}
	return &FallbackGenerator{
		chain:       chain,
		retryConfig: cfg,
		log:         log.WithModule("genai"),
		metrics:     metrics,
	}
}

// Generate tries each generator in the chain, with per-generator retry.
// A permanent error on one generator still advances the chain: the next
// model or provider may accept what the previous one refused.
func (f *FallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if f == nil || len(f.chain) == 0 {
		return "", errors.New("no generator configured")
	}

	var lastErr error
	for i, gen := range f.chain {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		start := time.Now()
		result, err := f.generateWithRetry(ctx, gen, prompt)
		duration := time.Since(start)

		if err == nil {
			if f.metrics != nil {
				f.metrics.RecordLLMRequest(gen.Provider().String(), "success", duration.Seconds())
			}
			if i > 0 {
				f.log.WithField("provider", gen.Provider()).
					WithField("chain_position", i).
					Info("fallback generator succeeded")
			}
			return result, nil
		}

		lastErr = err
		if f.metrics != nil {
			f.metrics.RecordLLMRequest(gen.Provider().String(), "error", duration.Seconds())
		}
		f.log.WithError(err).
			WithField("provider", gen.Provider()).
			WithField("chain_position", i).
			WithField("action", ClassifyError(err).String()).
			Warn("generator failed, advancing chain")
	}

	return "", fmt.Errorf("all generators failed: %w", lastErr)
}

// generateWithRetry attempts generation with backoff on transient errors.
func (f *FallbackGenerator) generateWithRetry(ctx context.Context, gen Generator, prompt string) (string, error) {
	var lastErr error

	for attempt := range f.retryConfig.MaxAttempts {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		result, err := gen.Generate(ctx, prompt)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if ClassifyError(err) != ActionRetry {
			return "", err
		}

		if attempt == f.retryConfig.MaxAttempts-1 {
			break
		}

		backoff := CalculateBackoff(attempt+1, f.retryConfig.InitialDelay, f.retryConfig.MaxDelay)
		if !HasSufficientBudget(ctx, backoff) {
			return "", fmt.Errorf("timeout during retry: %w", lastErr)
		}

		f.log.WithError(err).
			WithField("provider", gen.Provider()).
			WithField("attempt", attempt+1).
			WithField("backoff", backoff).
			Debug("retrying generation")

		if err := Sleep(ctx, backoff); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

// Provider returns the primary generator's provider.
func (f *FallbackGenerator) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close releases all generators in the chain.
func (f *FallbackGenerator) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, gen := range f.chain {
		if err := gen.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
