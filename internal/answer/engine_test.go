package answer

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	apperrors "github.com/smartcampus/coursesearch/internal/errors"
	"github.com/smartcampus/coursesearch/internal/genai"
	"github.com/smartcampus/coursesearch/internal/search"
	"github.com/smartcampus/coursesearch/internal/storage"
)

type countingRepo struct {
	courses []storage.Course
	calls   int
}

func (r *countingRepo) FindCourses(_ context.Context, _ storage.CourseFilter, limit int) ([]storage.Course, error) {
	r.calls++
	if len(r.courses) > limit {
		return r.courses[:limit], nil
	}
	return r.courses, nil
}

func (r *countingRepo) GetCourseByID(context.Context, int64) (*storage.Course, error) {
	return nil, storage.ErrNotFound
}

func (r *countingRepo) SaveCourse(context.Context, *storage.Course) error { return nil }

func (r *countingRepo) SaveCoursesBatch(context.Context, []*storage.Course) error { return nil }

func (r *countingRepo) CountCourses(context.Context) (int, error) { return len(r.courses), nil }

// countingGenerator satisfies genai.Generator for Configured setups.
type countingGenerator struct {
	result string
	err    error
	calls  int
}

func (g *countingGenerator) Generate(context.Context, string) (string, error) {
	g.calls++
	return g.result, g.err
}

func (g *countingGenerator) Provider() genai.Provider { return genai.ProviderGroq }
func (g *countingGenerator) Close() error             { return nil }

type stubEngineMetrics struct {
	searches  []string // mode values
	fallbacks []string // reasons
}

func (s *stubEngineMetrics) RecordSearch(mode, _ string, _ float64) {
	s.searches = append(s.searches, mode)
}

func (s *stubEngineMetrics) RecordFallback(reason string) {
	s.fallbacks = append(s.fallbacks, reason)
}

func bstCorpus() []storage.Course {
	return []storage.Course{
		{ID: 1, Title: "Binary Search Trees", Description: "Insert, delete, rotate.", TeacherName: "Dr. Chen"},
		{ID: 2, Title: "Calculus I", Description: "Limits and derivatives."},
	}
}

func newTestEngine(repo storage.CourseRepository, setup genai.Setup, m EngineMetrics) *Engine {
	ranker := search.NewRanker(repo, testLogger(), nil, 20)
	return NewEngine(ranker, setup, time.Second, testLogger(), m)
}

func TestAnswerValidation(t *testing.T) {
	repo := &countingRepo{courses: bstCorpus()}
	gen := &countingGenerator{result: "ANSWER: ok"}
	e := newTestEngine(repo, genai.Configured{Generator: gen}, nil)

	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"over limit", strings.Repeat("a", 501)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Answer(context.Background(), Request{Query: tt.query})
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !apperrors.IsValidation(err) {
				t.Errorf("error = %v, want ValidationError", err)
			}
		})
	}

	// Validation short-circuits before any corpus or LLM access.
	if repo.calls != 0 {
		t.Errorf("corpus calls = %d, want 0", repo.calls)
	}
	if gen.calls != 0 {
		t.Errorf("LLM calls = %d, want 0", gen.calls)
	}
}

func TestAnswerBoundaryLengths(t *testing.T) {
	repo := &countingRepo{courses: bstCorpus()}
	e := newTestEngine(repo, genai.Unconfigured{Reason: "test"}, nil)

	for _, query := range []string{"abc", strings.Repeat("a", 500)} {
		if _, err := e.Answer(context.Background(), Request{Query: query}); err != nil {
			t.Errorf("Answer(%d chars) error = %v, want nil", len(query), err)
		}
	}
}

func TestAnswerUnconfiguredNeverCallsLLM(t *testing.T) {
	repo := &countingRepo{courses: bstCorpus()}
	m := &stubEngineMetrics{}
	e := newTestEngine(repo, genai.Unconfigured{Reason: "no usable API key"}, m)

	resp, err := e.Answer(context.Background(), Request{Query: "binary search tree"})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	ranker := search.NewRanker(repo, testLogger(), nil, 20)
	want := Synthesize("binary search tree",
		ranker.Rank(context.Background(), "binary search tree", storage.CourseFilter{}))
	if !reflect.DeepEqual(resp, want) {
		t.Error("unconfigured response differs from synthesized response")
	}
	if len(m.fallbacks) != 1 || m.fallbacks[0] != "unconfigured" {
		t.Errorf("fallback reasons = %v, want [unconfigured]", m.fallbacks)
	}
	if len(m.searches) != 1 || m.searches[0] != "fallback" {
		t.Errorf("search modes = %v, want [fallback]", m.searches)
	}
}

func TestAnswerConfiguredUsesModelOutput(t *testing.T) {
	repo := &countingRepo{courses: bstCorpus()}
	gen := &countingGenerator{
		result: "ANSWER: Take the BST course.\nCONFIDENCE: 0.9\n",
	}
	m := &stubEngineMetrics{}
	e := newTestEngine(repo, genai.Configured{Generator: gen}, m)

	resp, err := e.Answer(context.Background(), Request{Query: "binary search tree", UserID: "u-123"})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if resp.Answer != "Take the BST course." {
		t.Errorf("answer = %q", resp.Answer)
	}
	if resp.Confidence != 0.9 {
		t.Errorf("confidence = %v", resp.Confidence)
	}
	// One answer call plus one analysis call for the top candidate.
	if gen.calls != 2 {
		t.Errorf("LLM calls = %d, want 2", gen.calls)
	}
	if len(m.fallbacks) != 0 {
		t.Errorf("fallback reasons = %v, want none", m.fallbacks)
	}
	if len(m.searches) != 1 || m.searches[0] != "llm" {
		t.Errorf("search modes = %v, want [llm]", m.searches)
	}
}

func TestAnswerCallFailureSynthesizes(t *testing.T) {
	repo := &countingRepo{courses: bstCorpus()}
	gen := &countingGenerator{err: context.DeadlineExceeded}
	m := &stubEngineMetrics{}
	e := newTestEngine(repo, genai.Configured{Generator: gen}, m)

	resp, err := e.Answer(context.Background(), Request{Query: "binary search tree"})
	if err != nil {
		t.Fatalf("Answer() error = %v, degraded path must not fail", err)
	}
	if !strings.Contains(resp.Answer, "Binary Search Trees") {
		t.Errorf("answer = %q, want synthesized answer", resp.Answer)
	}
	if len(m.fallbacks) != 1 || m.fallbacks[0] != "call_failed" {
		t.Errorf("fallback reasons = %v, want [call_failed]", m.fallbacks)
	}
}

func TestAnswerEmptyOutputSynthesizes(t *testing.T) {
	repo := &countingRepo{courses: bstCorpus()}
	gen := &countingGenerator{result: ""}
	m := &stubEngineMetrics{}
	e := newTestEngine(repo, genai.Configured{Generator: gen}, m)

	resp, err := e.Answer(context.Background(), Request{Query: "binary search tree"})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !strings.Contains(resp.Answer, "Binary Search Trees") {
		t.Errorf("answer = %q, want synthesized answer", resp.Answer)
	}
	if len(m.fallbacks) != 1 || m.fallbacks[0] != "empty_output" {
		t.Errorf("fallback reasons = %v, want [empty_output]", m.fallbacks)
	}
}

func TestAnswerEmptyCorpus(t *testing.T) {
	repo := &countingRepo{}
	e := newTestEngine(repo, genai.Unconfigured{Reason: "test"}, nil)

	resp, err := e.Answer(context.Background(), Request{Query: "quantum computing"})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !strings.Contains(resp.Answer, "couldn't find") {
		t.Errorf("answer = %q, want not-found message", resp.Answer)
	}
	if resp.Confidence != 0.1 || resp.ExactMatch || len(resp.RelatedCourses) != 0 {
		t.Errorf("response = %+v, want not-found defaults", resp)
	}
}
