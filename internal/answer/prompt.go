package answer

import (
	"fmt"
	"strings"

	"github.com/smartcampus/coursesearch/internal/search"
)

// Response line keys the model is instructed to emit, one per line.
// The parser recognizes exactly this set.
const (
	keyAnswer     = "ANSWER:"
	keySource     = "SOURCE:"
	keyTeacher    = "TEACHER:"
	keySubject    = "SUBJECT:"
	keyLocation   = "LOCATION:"
	keySummary    = "SUMMARY:"
	keyConfidence = "CONFIDENCE:"
)

// BuildPrompt renders the instruction prompt for a query and its ranked
// candidates. The rigid line-prefixed output format exists to make model
// output machine-parseable despite its generative nature; any drift from
// it is absorbed by the parser's defaults.
func BuildPrompt(query string, candidates []search.Candidate) string {
	var b strings.Builder

	b.WriteString("You are a course assistant for a campus learning platform. ")
	b.WriteString("Answer the student's question using ONLY the course records below.\n\n")

	fmt.Fprintf(&b, "STUDENT QUESTION: %s\n\n", query)

	if len(candidates) == 0 {
		b.WriteString("COURSE RECORDS: none matched the question.\n\n")
	} else {
		b.WriteString("COURSE RECORDS (most relevant first):\n")
		for i, c := range candidates {
			fmt.Fprintf(&b, "%d. Title: %s\n", i+1, c.Course.Title)
			if c.Course.Description != "" {
				fmt.Fprintf(&b, "   Description: %s\n", c.Course.Description)
			}
			if c.Course.Subject != "" {
				fmt.Fprintf(&b, "   Subject: %s\n", c.Course.Subject)
			}
			if c.Course.SubjectCategory != "" {
				fmt.Fprintf(&b, "   Category: %s\n", c.Course.SubjectCategory)
			}
			if c.Course.TeacherName != "" {
				fmt.Fprintf(&b, "   Teacher: %s\n", c.Course.TeacherName)
			}
			if ref := c.Course.FileReference(); ref != "" {
				fmt.Fprintf(&b, "   File: %s\n", ref)
			}
			fmt.Fprintf(&b, "   Match: %s (%.0f%% relevance)\n", c.MatchType, c.Score*100)
		}
		b.WriteString("\n")
	}

	b.WriteString("Respond in EXACTLY this format, one value per line, no other text:\n")
	b.WriteString(keyAnswer + " <direct answer to the question>\n")
	b.WriteString(keySource + " <course title or file the answer comes from>\n")
	b.WriteString(keyTeacher + " <teacher name, or omit the line if unknown>\n")
	b.WriteString(keySubject + " <subject name, or omit the line if unknown>\n")
	b.WriteString(keyLocation + " <where the student can find the material>\n")
	b.WriteString(keySummary + " <one-sentence summary of the matched course>\n")
	b.WriteString(keyConfidence + " <number between 0 and 1>\n")

	return b.String()
}
