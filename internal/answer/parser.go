package answer

import (
	"strconv"
	"strings"

	"github.com/smartcampus/coursesearch/internal/search"
)

// Placeholder markers some models emit instead of omitting a line.
// Lines carrying them are treated as "field not provided".
const (
	teacherPlaceholder = "undefined"
	subjectPlaceholder = "General"
)

// Parse converts raw model output into a structured response.
//
// The default response is synthesized from the candidates first; the raw
// text then overrides fields line by line. Unrecognized lines are skipped,
// placeholder values are ignored, and a non-numeric confidence keeps the
// default. Empty input returns the default unchanged, so Parse("") is
// exactly Synthesize. This function never fails: the worst model output
// degrades field-by-field to the synthesized defaults.
func Parse(raw, query string, candidates []search.Candidate) StructuredResponse {
	resp := Synthesize(query, candidates)

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return resp
	}

	for key, value := range tokenizeLines(raw) {
		applyField(&resp, key, value)
	}
	return resp
}

// tokenizeLines scans raw output for recognized key-prefixed lines and
// returns the last value seen per key. Models occasionally repeat the
// format block; the last occurrence is the actual answer.
func tokenizeLines(raw string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		for _, key := range []string{
			keyAnswer, keySource, keyTeacher, keySubject,
			keyLocation, keySummary, keyConfidence,
		} {
			if strings.HasPrefix(line, key) {
				fields[key] = strings.TrimSpace(strings.TrimPrefix(line, key))
				break
			}
		}
	}
	return fields
}

// applyField overwrites one default field, honoring the placeholder and
// numeric guards.
func applyField(resp *StructuredResponse, key, value string) {
	if value == "" {
		return
	}
	switch key {
	case keyAnswer:
		resp.Answer = value
	case keySource:
		resp.Source = value
	case keyTeacher:
		if !strings.Contains(value, teacherPlaceholder) {
			resp.Teacher = value
		}
	case keySubject:
		if !strings.Contains(value, subjectPlaceholder) {
			resp.Subject = value
		}
	case keyLocation:
		resp.Location = value
	case keySummary:
		resp.Summary = value
	case keyConfidence:
		if conf, err := strconv.ParseFloat(value, 64); err == nil {
			resp.Confidence = clampUnit(conf)
		}
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
