package answer

import (
	"fmt"

	"github.com/smartcampus/coursesearch/internal/search"
)

// Default field values used when a course record leaves a field empty or
// no candidate exists at all.
const (
	defaultSource   = "Course Database Search"
	defaultTeacher  = "No specific teacher"
	defaultSubject  = "General"
	defaultLocation = "Not found in current courses"
)

// Confidence shaping for the deterministic path. The boost rewards a
// strong retrieval match while capping below full certainty, since no
// model confirmed the answer.
const (
	confidenceBoost     = 1.2
	confidenceCeiling   = 0.95
	noMatchConfidence   = 0.1
	exactMatchThreshold = 0.7
)

// maxRelatedCourses bounds the related-course list in every response.
const maxRelatedCourses = 3

// Synthesize builds a structured response directly from ranked candidates,
// without any external call. Pure and deterministic: the same query and
// candidates always produce the same response. It is both the
// degraded-mode answer and the parser's default.
func Synthesize(query string, candidates []search.Candidate) StructuredResponse {
	if len(candidates) == 0 {
		return StructuredResponse{
			Answer: fmt.Sprintf(
				"I couldn't find any courses matching %q in the current course database. "+
					"Try rephrasing your question or using different keywords.", query),
			Source:         defaultSource,
			Teacher:        defaultTeacher,
			Subject:        defaultSubject,
			Location:       defaultLocation,
			Summary:        "No matching courses were found for this question.",
			Confidence:     noMatchConfidence,
			RelatedCourses: []RelatedCourse{},
			ExactMatch:     false,
		}
	}

	top := candidates[0]
	course := top.Course

	confidence := top.Score * confidenceBoost
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}

	resp := StructuredResponse{
		Answer: fmt.Sprintf(
			"Based on the course database, %q is the most relevant course for your question %q.",
			course.Title, query),
		Source:         defaultSource,
		Teacher:        valueOr(course.TeacherName, defaultTeacher),
		Subject:        valueOr(course.Subject, valueOr(course.SubjectCategory, defaultSubject)),
		Location:       valueOr(course.FileReference(), defaultLocation),
		Summary:        summarize(course.Title, course.Description),
		Confidence:     confidence,
		CourseAnalysis: AnalysisTemplate(course),
		RelatedCourses: relatedCourses(candidates),
		ExactMatch:     top.Score > exactMatchThreshold,
	}
	return resp
}

// relatedCourses maps the leading candidates to compact summaries.
func relatedCourses(candidates []search.Candidate) []RelatedCourse {
	n := len(candidates)
	if n > maxRelatedCourses {
		n = maxRelatedCourses
	}
	related := make([]RelatedCourse, 0, n)
	for _, c := range candidates[:n] {
		related = append(related, RelatedCourse{
			Title:         c.Course.Title,
			Teacher:       valueOr(c.Course.TeacherName, defaultTeacher),
			Subject:       valueOr(c.Course.Subject, valueOr(c.Course.SubjectCategory, defaultSubject)),
			Relevance:     int(c.Score * 100),
			FileReference: c.Course.FileReference(),
		})
	}
	return related
}

func summarize(title, description string) string {
	if description != "" {
		return description
	}
	return fmt.Sprintf("Course material for %q.", title)
}

func valueOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
