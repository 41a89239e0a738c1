package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Search pipeline metrics
	SearchRequestsTotal   *prometheus.CounterVec
	SearchDurationSeconds prometheus.Histogram
	CandidatesPerSearch   prometheus.Histogram

	// LLM metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMDurationSeconds *prometheus.HistogramVec

	// Degraded-path metrics
	FallbackTotal     *prometheus.CounterVec
	CorpusErrorsTotal prometheus.Counter

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_search_requests_total",
				Help: "Total number of search requests by mode and status",
			},
			[]string{"mode", "status"}, // mode: llm, fallback; status: success, error
		),

		SearchDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campus_search_duration_seconds",
				Help:    "End-to-end search pipeline duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
		),

		CandidatesPerSearch: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campus_search_candidates",
				Help:    "Number of ranked candidates per search",
				Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
			},
		),

		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_llm_requests_total",
				Help: "Total number of LLM requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error, timeout
		),

		LLMDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campus_llm_duration_seconds",
				Help:    "LLM call duration in seconds by provider",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"provider"},
		),

		FallbackTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_fallback_total",
				Help: "Total number of responses served by the deterministic synthesizer",
			},
			[]string{"reason"}, // reason: unconfigured, call_failed, parse_failed, empty_output
		),

		CorpusErrorsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "campus_corpus_errors_total",
				Help: "Total number of course corpus access failures",
			},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_http_errors_total",
				Help: "Total HTTP errors by type",
			},
			[]string{"error_type"}, // error_type: validation, bad_request
		),
	}

	return m
}

// RecordSearch records a completed search request
func (m *Metrics) RecordSearch(mode, status string, duration float64) {
	m.SearchRequestsTotal.WithLabelValues(mode, status).Inc()
	m.SearchDurationSeconds.Observe(duration)
}

// RecordCandidates records the candidate count of a ranking pass
func (m *Metrics) RecordCandidates(count int) {
	m.CandidatesPerSearch.Observe(float64(count))
}

// RecordLLMRequest records an LLM call with status
func (m *Metrics) RecordLLMRequest(provider, status string, duration float64) {
	m.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	m.LLMDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordFallback records a response served by the deterministic synthesizer
func (m *Metrics) RecordFallback(reason string) {
	m.FallbackTotal.WithLabelValues(reason).Inc()
}

// RecordCorpusError records a course corpus access failure
func (m *Metrics) RecordCorpusError() {
	m.CorpusErrorsTotal.Inc()
}

// RecordHTTPError records an HTTP-level error
func (m *Metrics) RecordHTTPError(errorType string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType).Inc()
}
