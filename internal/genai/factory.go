// Package genai provides integration with LLM APIs (Gemini and Groq).
// This file contains the startup decision between LLM-backed and
// fallback-only answering, and the construction of the generator chain.
package genai

import (
	"context"

	"github.com/smartcampus/coursesearch/internal/config"
	"github.com/smartcampus/coursesearch/internal/logger"
)

// Setup is the answering mode decided once at startup. It is either
// Configured (a usable generator chain exists) or Unconfigured (every
// answer will be synthesized locally). The decision is never revisited
// at request time.
type Setup interface {
	// Mode returns "llm" or "fallback" for logs and metrics.
	Mode() string
	isSetup()
}

// Configured carries the generator chain to use for answering.
type Configured struct {
	Generator Generator
}

// Mode implements Setup.
func (Configured) Mode() string { return "llm" }
func (Configured) isSetup()     {}

// Unconfigured means no provider had a usable API key.
type Unconfigured struct {
	// Reason explains the decision, for the startup log line.
	Reason string
}

// Mode implements Setup.
func (Unconfigured) Mode() string { return "fallback" }
func (Unconfigured) isSetup()     {}

// Init inspects the configuration and builds the generator chain.
// Keys that are empty, too short, or obvious placeholders do not count
// as configured. Client construction failures degrade to Unconfigured
// rather than aborting startup; metrics may be nil.
func Init(ctx context.Context, cfg Config, log *logger.Logger, metrics MetricsRecorder) Setup {
	log = log.WithModule("genai")

	usable := Config{Providers: cfg.Providers, Retry: cfg.Retry}
	if config.IsUsableAPIKey(cfg.Gemini.APIKey) {
		usable.Gemini = cfg.Gemini
	}
	if config.IsUsableAPIKey(cfg.Groq.APIKey) {
		usable.Groq = cfg.Groq
	}

	providers := usable.ConfiguredProviders()
	if len(providers) == 0 {
		log.Info("no usable LLM API key, answers will be synthesized locally")
		return Unconfigured{Reason: "no usable API key"}
	}

	var chain []Generator
	for _, p := range providers {
		pc := usable.GetProviderConfig(p)
		models := pc.Models
		if len(models) == 0 {
			models = defaultModels(p)
		}
		for _, m := range models {
			gen, err := newGenerator(ctx, p, pc.APIKey, m, log)
			if err != nil {
				log.WithError(err).
					WithField("provider", p).
					WithField("model", m).
					Warn("failed to create generator")
				continue
			}
			chain = append(chain, gen)
		}
	}

	if len(chain) == 0 {
		log.Warn("all generator constructions failed, answers will be synthesized locally")
		return Unconfigured{Reason: "generator construction failed"}
	}

	log.WithField("primary", chain[0].Provider()).
		WithField("chain_size", len(chain)).
		Info("LLM answering configured")

	return Configured{
		Generator: NewFallbackGenerator(usable.Retry, log, metrics, chain...),
	}
}

func newGenerator(ctx context.Context, p Provider, apiKey, model string, log *logger.Logger) (Generator, error) {
	if p.IsOpenAICompatible() {
		return newOpenAIGenerator(ctx, p, apiKey, model, log)
	}
	return newGeminiGenerator(ctx, apiKey, model, log)
}

func defaultModels(p Provider) []string {
	switch p {
	case ProviderGemini:
		return DefaultGeminiModels
	case ProviderGroq:
		return DefaultGroqModels
	default:
		return nil
	}
}
