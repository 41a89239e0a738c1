package answer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/smartcampus/coursesearch/internal/logger"
	"github.com/smartcampus/coursesearch/internal/storage"
)

// TextGenerator produces a completion for a prompt. It is the answer
// package's view of the LLM chain.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnalysisGenerator produces longer-form commentary on a single course.
// The external call is best effort: any failure yields the deterministic
// template instead. Concurrent requests for the same course share one
// in-flight call.
type AnalysisGenerator struct {
	gen   TextGenerator
	log   *logger.Logger
	group singleflight.Group
}

// NewAnalysisGenerator creates an analysis generator.
// gen may be nil; the template is then used unconditionally.
func NewAnalysisGenerator(gen TextGenerator, log *logger.Logger) *AnalysisGenerator {
	return &AnalysisGenerator{
		gen: gen,
		log: log.WithModule("answer"),
	}
}

// Generate returns an analysis of the course. Never fails.
func (a *AnalysisGenerator) Generate(ctx context.Context, course storage.Course) string {
	if a == nil || a.gen == nil {
		return AnalysisTemplate(course)
	}

	key := strconv.FormatInt(course.ID, 10)
	result, err, _ := a.group.Do(key, func() (any, error) {
		return a.gen.Generate(ctx, analysisPrompt(course))
	})
	if err != nil {
		a.log.WithError(err).
			WithField("course_id", course.ID).
			Warn("course analysis generation failed, using template")
		return AnalysisTemplate(course)
	}

	text := strings.TrimSpace(result.(string))
	if text == "" {
		return AnalysisTemplate(course)
	}
	return text
}

// analysisPrompt asks for a structured commentary on one course.
func analysisPrompt(course storage.Course) string {
	var b strings.Builder
	b.WriteString("Write a concise analysis of the following course for a student deciding whether to study it.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", course.Title)
	if course.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", course.Subject)
	}
	if course.SubjectCategory != "" {
		fmt.Fprintf(&b, "Category: %s\n", course.SubjectCategory)
	}
	if course.TeacherName != "" {
		fmt.Fprintf(&b, "Teacher: %s\n", course.TeacherName)
	}
	if course.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", course.Description)
	}
	b.WriteString("\nCover: content overview, learning objectives, difficulty level, ")
	b.WriteString("practical applications, prerequisites, study recommendations, and career relevance. ")
	b.WriteString("Keep it under 200 words of plain prose.")
	return b.String()
}

// AnalysisTemplate is the deterministic analysis used whenever no model
// output is available.
func AnalysisTemplate(course storage.Course) string {
	subject := valueOr(course.Subject, valueOr(course.SubjectCategory, defaultSubject))
	description := valueOr(course.Description, "No detailed description is available yet.")
	return fmt.Sprintf(
		"%q is a course in the %s area. %s "+
			"Review the course materials to judge the difficulty and prerequisites, "+
			"and check with the course teacher for study recommendations.",
		course.Title, subject, description)
}
