package search

import "strings"

// Per-term scoring weights. A whole-field match must dominate any
// combination of substring hits, so it earns triple the base weight.
const (
	containsWeight = 1.0
	exactBonus     = 2.0
	wordStartBonus = 0.5
	maxRelevance   = 1.0
)

// Relevance scores how well text matches the query, in [0,1].
//
// Each query term contributes containsWeight when the lowercased text
// contains it, exactBonus on top when the whole text equals the term, and
// wordStartBonus when the term occurs at a word boundary (text starts with
// it, or it follows a space). The sum is divided by the term count; only the
// final value is clamped, so a single strong term can carry a multi-term
// query.
//
// Empty text or a query with no extractable terms scores 0.
func Relevance(query, text string) float64 {
	if text == "" {
		return 0
	}

	terms := ExtractTerms(query)
	if len(terms) == 0 {
		return 0
	}

	lower := strings.ToLower(text)

	var score float64
	for _, term := range terms {
		if !strings.Contains(lower, term) {
			continue
		}
		score += containsWeight
		if lower == term {
			score += exactBonus
		}
		if strings.HasPrefix(lower, term) || strings.Contains(lower, " "+term) {
			score += wordStartBonus
		}
	}

	score /= float64(len(terms))
	if score > maxRelevance {
		score = maxRelevance
	}
	return score
}
