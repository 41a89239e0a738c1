package answer

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/smartcampus/coursesearch/internal/errors"
	"github.com/smartcampus/coursesearch/internal/genai"
	"github.com/smartcampus/coursesearch/internal/logger"
	"github.com/smartcampus/coursesearch/internal/search"
	"github.com/smartcampus/coursesearch/internal/storage"
)

// maxQueryLength is the longest accepted query, in characters.
const maxQueryLength = 500

// Request is one answer pipeline invocation.
type Request struct {
	Query     string
	UserID    string // opaque, logged only, never ranked on
	SubjectID *int64
	CourseID  *int64
}

// Fallback reasons recorded when the deterministic path serves a request.
const (
	reasonUnconfigured = "unconfigured"
	reasonCallFailed   = "call_failed"
	reasonEmptyOutput  = "empty_output"
)

// EngineMetrics records answer pipeline outcomes.
type EngineMetrics interface {
	RecordSearch(mode, status string, duration float64)
	RecordFallback(reason string)
}

// Engine orchestrates the answer pipeline: rank candidates, then either
// run the LLM round trip or synthesize deterministically. The mode is
// fixed at construction from the startup Setup decision and never changes
// at request time.
type Engine struct {
	ranker     *search.Ranker
	gen        TextGenerator // nil in fallback-only mode
	analysis   *AnalysisGenerator
	mode       string
	llmTimeout time.Duration
	log        *logger.Logger
	metrics    EngineMetrics
}

// NewEngine creates the pipeline engine from the startup LLM decision.
// metrics may be nil.
func NewEngine(ranker *search.Ranker, setup genai.Setup, llmTimeout time.Duration, log *logger.Logger, metrics EngineMetrics) *Engine {
	e := &Engine{
		ranker:     ranker,
		mode:       setup.Mode(),
		llmTimeout: llmTimeout,
		log:        log.WithModule("answer"),
		metrics:    metrics,
	}
	if c, ok := setup.(genai.Configured); ok {
		e.gen = c.Generator
	}
	e.analysis = NewAnalysisGenerator(e.gen, log)
	return e
}

// Answer runs the pipeline for one request. The only possible error is a
// validation failure on the query; every downstream problem degrades to a
// synthesized response instead.
func (e *Engine) Answer(ctx context.Context, req Request) (StructuredResponse, error) {
	query, err := validateQuery(req.Query)
	if err != nil {
		return StructuredResponse{}, err
	}

	start := time.Now()
	log := e.log
	if req.UserID != "" {
		log = log.WithField("user_id", req.UserID)
	}

	candidates := e.ranker.Rank(ctx, query, storage.CourseFilter{
		SubjectID: req.SubjectID,
		CourseID:  req.CourseID,
	})

	resp := e.respond(ctx, query, candidates)

	if e.metrics != nil {
		e.metrics.RecordSearch(e.mode, "success", time.Since(start).Seconds())
	}
	log.WithFields(map[string]any{
		"mode":        e.mode,
		"candidates":  len(candidates),
		"confidence":  resp.Confidence,
		"exact_match": resp.ExactMatch,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("answer produced")

	return resp, nil
}

// respond picks the LLM or fallback path for ranked candidates.
func (e *Engine) respond(ctx context.Context, query string, candidates []search.Candidate) StructuredResponse {
	if e.gen == nil {
		e.recordFallback(reasonUnconfigured)
		return Synthesize(query, candidates)
	}

	llmCtx, cancel := context.WithTimeout(ctx, e.llmTimeout)
	defer cancel()

	raw, err := e.gen.Generate(llmCtx, BuildPrompt(query, candidates))
	if err != nil {
		// Timeouts land here too and are treated like any call failure.
		e.log.WithError(err).Warn("LLM call failed, synthesizing answer")
		e.recordFallback(reasonCallFailed)
		return Synthesize(query, candidates)
	}
	if raw == "" {
		e.recordFallback(reasonEmptyOutput)
	}

	resp := Parse(raw, query, candidates)
	if len(candidates) > 0 {
		resp.CourseAnalysis = e.analysis.Generate(ctx, candidates[0].Course)
	}
	return resp
}

func (e *Engine) recordFallback(reason string) {
	if e.metrics != nil {
		e.metrics.RecordFallback(reason)
	}
}

// validateQuery trims and bounds the query. It runs before any corpus or
// LLM access so invalid input has no side effects.
func validateQuery(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", apperrors.NewValidationError("query", "query must not be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxQueryLength {
		return "", apperrors.NewValidationError("query", "query must be at most 500 characters")
	}
	return trimmed, nil
}
