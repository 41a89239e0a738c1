package genai

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/smartcampus/coursesearch/internal/logger"
)

// stubGenerator returns canned results, optionally failing the first
// errCount calls.
type stubGenerator struct {
	provider Provider
	result   string
	err      error
	errCount int
	calls    int
	closed   bool
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil && (s.errCount == 0 || s.calls <= s.errCount) {
		return "", s.err
	}
	return s.result, nil
}

func (s *stubGenerator) Provider() Provider { return s.provider }

func (s *stubGenerator) Close() error {
	s.closed = true
	return nil
}

type recordedLLMCall struct {
	provider string
	status   string
}

type stubLLMMetrics struct {
	calls []recordedLLMCall
}

func (s *stubLLMMetrics) RecordLLMRequest(provider, status string, _ float64) {
	s.calls = append(s.calls, recordedLLMCall{provider, status})
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func discardLogger() *logger.Logger {
	return logger.NewWithWriter("error", io.Discard)
}

func TestFallbackGeneratorPrimarySucceeds(t *testing.T) {
	primary := &stubGenerator{provider: ProviderGemini, result: "ANSWER: ok"}
	secondary := &stubGenerator{provider: ProviderGroq, result: "unused"}
	m := &stubLLMMetrics{}
	f := NewFallbackGenerator(fastRetry(), discardLogger(), m, primary, secondary)

	got, err := f.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "ANSWER: ok" {
		t.Errorf("Generate() = %q", got)
	}
	if secondary.calls != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.calls)
	}
	if len(m.calls) != 1 || m.calls[0] != (recordedLLMCall{"gemini", "success"}) {
		t.Errorf("metrics calls = %v", m.calls)
	}
}

func TestFallbackGeneratorRetriesTransientError(t *testing.T) {
	gen := &stubGenerator{
		provider: ProviderGroq,
		result:   "recovered",
		err:      errors.New("503 service temporarily unavailable"),
		errCount: 1,
	}
	f := NewFallbackGenerator(fastRetry(), discardLogger(), nil, gen)

	got, err := f.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "recovered" {
		t.Errorf("Generate() = %q", got)
	}
	if gen.calls != 2 {
		t.Errorf("generator called %d times, want 2", gen.calls)
	}
}

func TestFallbackGeneratorAdvancesChain(t *testing.T) {
	primary := &stubGenerator{provider: ProviderGemini, err: errors.New("401 unauthorized")}
	secondary := &stubGenerator{provider: ProviderGroq, result: "from groq"}
	m := &stubLLMMetrics{}
	f := NewFallbackGenerator(fastRetry(), discardLogger(), m, primary, secondary)

	got, err := f.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "from groq" {
		t.Errorf("Generate() = %q", got)
	}
	// Permanent errors skip retry but still advance the chain.
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want 1", primary.calls)
	}
	want := []recordedLLMCall{{"gemini", "error"}, {"groq", "success"}}
	if len(m.calls) != 2 || m.calls[0] != want[0] || m.calls[1] != want[1] {
		t.Errorf("metrics calls = %v, want %v", m.calls, want)
	}
}

func TestFallbackGeneratorAllFail(t *testing.T) {
	primary := &stubGenerator{provider: ProviderGemini, err: errors.New("503 unavailable")}
	secondary := &stubGenerator{provider: ProviderGroq, err: errors.New("quota exceeded")}
	f := NewFallbackGenerator(fastRetry(), discardLogger(), nil, primary, secondary)

	_, err := f.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error when all generators fail")
	}
	if primary.calls != 2 {
		t.Errorf("primary called %d times, want 2 (retried)", primary.calls)
	}
	if secondary.calls != 1 {
		t.Errorf("secondary called %d times, want 1 (fallback error, no retry)", secondary.calls)
	}
}

func TestFallbackGeneratorEmptyChain(t *testing.T) {
	f := NewFallbackGenerator(fastRetry(), discardLogger(), nil)
	if _, err := f.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty chain")
	}
}

func TestFallbackGeneratorContextCancelled(t *testing.T) {
	gen := &stubGenerator{provider: ProviderGroq, result: "never"}
	f := NewFallbackGenerator(fastRetry(), discardLogger(), nil, gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Generate(ctx, "prompt"); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times after cancel, want 0", gen.calls)
	}
}

func TestFallbackGeneratorClose(t *testing.T) {
	a := &stubGenerator{provider: ProviderGemini}
	b := &stubGenerator{provider: ProviderGroq}
	f := NewFallbackGenerator(fastRetry(), discardLogger(), nil, a, b)

	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("expected all chain members closed")
	}
}
