package search

import (
	"context"
	"sort"

	"github.com/smartcampus/coursesearch/internal/logger"
	"github.com/smartcampus/coursesearch/internal/storage"
)

// MatchType identifies the course field that produced a candidate's score.
type MatchType string

const (
	MatchTitle       MatchType = "title"
	MatchDescription MatchType = "description"
	MatchSubject     MatchType = "subject"
	MatchContent     MatchType = "content"
)

// Candidate is a course record paired with its best-field relevance.
// Candidates are ephemeral: created per ranking pass, never persisted.
type Candidate struct {
	Course         storage.Course
	Score          float64 // relevance in (0.1, 1]
	MatchedContent string  // text of the field that scored best
	MatchType      MatchType
}

// noiseFloor is the minimum best-field score a record must clear.
// Scores at or below it are incidental substring hits, not matches.
const noiseFloor = 0.1

// MetricsRecorder records ranking outcomes.
type MetricsRecorder interface {
	RecordCandidates(count int)
	RecordCorpusError()
}

// Ranker retrieves a bounded candidate set from the course corpus and
// ranks it by best-field relevance.
type Ranker struct {
	repo    storage.CourseRepository
	log     *logger.Logger
	metrics MetricsRecorder
	limit   int
}

// NewRanker creates a Ranker fetching at most limit records per pass.
// metrics may be nil.
func NewRanker(repo storage.CourseRepository, log *logger.Logger, metrics MetricsRecorder, limit int) *Ranker {
	if limit <= 0 {
		limit = 20
	}
	return &Ranker{
		repo:    repo,
		log:     log.WithModule("search"),
		metrics: metrics,
		limit:   limit,
	}
}

// Rank fetches courses matching the filter and returns them as candidates
// sorted by score descending. Ties keep retrieval order (newest first); the
// sort is stable on purpose and no secondary key is applied.
//
// A corpus failure is logged and treated as zero candidates so the pipeline
// degrades instead of aborting.
func (r *Ranker) Rank(ctx context.Context, query string, filter storage.CourseFilter) []Candidate {
	courses, err := r.repo.FindCourses(ctx, filter, r.limit)
	if err != nil {
		r.log.WithError(err).Warn("corpus fetch failed, continuing with zero candidates")
		if r.metrics != nil {
			r.metrics.RecordCorpusError()
		}
		return nil
	}

	candidates := make([]Candidate, 0, len(courses))
	for _, course := range courses {
		if c, ok := scoreCourse(query, course); ok {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if r.metrics != nil {
		r.metrics.RecordCandidates(len(candidates))
	}
	r.log.WithField("query_length", len(query)).
		WithField("fetched", len(courses)).
		WithField("candidates", len(candidates)).
		Debug("ranking pass completed")

	return candidates
}

// scoreCourse scores the four searchable fields of a course and keeps the
// single best one. Field order is a priority: a later field must score
// strictly higher to win, so title beats description on equal scores.
func scoreCourse(query string, course storage.Course) (Candidate, bool) {
	fields := []struct {
		text      string
		matchType MatchType
	}{
		{course.Title, MatchTitle},
		{course.Description, MatchDescription},
		{course.Subject, MatchSubject},
		{course.SubjectCategory, MatchContent},
	}

	best := Candidate{Course: course}
	for _, f := range fields {
		if score := Relevance(query, f.text); score > best.Score {
			best.Score = score
			best.MatchedContent = f.text
			best.MatchType = f.matchType
		}
	}

	if best.Score <= noiseFloor {
		return Candidate{}, false
	}
	return best, true
}
