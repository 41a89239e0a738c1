// Package search implements keyword relevance search over the course corpus.
// A query is reduced to scoring terms, each course is scored on its best
// text field, and the survivors are ranked into candidates.
package search

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// stopWords are query tokens that carry no ranking signal: articles,
// prepositions and interrogatives. Tokens of length <= 2 are dropped
// before this set is consulted, so short function words need no entry.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {},
	"into": {}, "onto": {}, "over": {}, "under": {}, "about": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {},
	"whom": {}, "whose": {}, "why": {}, "how": {},
	"are": {}, "was": {}, "were": {}, "been": {},
	"can": {}, "could": {}, "should": {}, "would": {},
	"does": {}, "did": {}, "have": {}, "has": {}, "had": {},
}

// minTermLength is the shortest token kept as a scoring term.
const minTermLength = 3

// ExtractTerms normalizes a query into an ordered sequence of scoring terms:
// NFKC-normalized, lowercased, whitespace-split, with stop words and tokens
// shorter than three runes removed. Repeated terms are kept, so downstream
// scoring counts each query occurrence separately.
func ExtractTerms(query string) []string {
	normalized := strings.ToLower(norm.NFKC.String(query))

	var terms []string
	for _, token := range strings.Fields(normalized) {
		if len([]rune(token)) < minTermLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}
