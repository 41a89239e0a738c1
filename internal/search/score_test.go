package search

import (
	"math"
	"testing"
)

func TestRelevance(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  float64
	}{
		{
			name:  "empty text",
			query: "databases",
			text:  "",
			want:  0,
		},
		{
			name:  "no extractable terms",
			query: "what is the",
			text:  "Introduction to Databases",
			want:  0,
		},
		{
			name:  "no overlap",
			query: "quantum mechanics",
			text:  "Introduction to Databases",
			want:  0,
		},
		{
			name:  "whole text equals single term",
			query: "databases",
			text:  "Databases",
			want:  1.0, // 1 + 2 + 0.5 clamps
		},
		{
			name:  "all terms at word starts clamps",
			query: "binary search tree",
			text:  "Binary Search Trees",
			want:  1.0, // (1.5 + 1.5 + 1.5) / 3 clamps
		},
		{
			name:  "half the terms match",
			query: "binary search",
			text:  "Search Algorithms",
			want:  0.75, // (0 + 1.5) / 2
		},
		{
			name:  "mid word hit earns no boundary bonus",
			query: "art history",
			text:  "departmental seminar",
			want:  0.5, // (1.0 + 0) / 2
		},
		{
			name:  "interior word start counts",
			query: "algorithms",
			text:  "Advanced Algorithms",
			want:  1.0, // 1 + 0.5 clamps
		},
		{
			name:  "duplicate terms count twice",
			query: "tree tree logic",
			text:  "Tree Structures",
			want:  1.0, // (1.5 + 1.5 + 0) / 3
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Relevance(tt.query, tt.text)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Relevance(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
			}
		})
	}
}

func TestRelevanceBounds(t *testing.T) {
	queries := []string{"databases", "binary search tree", "tree tree tree tree"}
	texts := []string{"", "tree", "Binary Search Trees", "a tree of trees inside trees"}
	for _, q := range queries {
		for _, text := range texts {
			got := Relevance(q, text)
			if got < 0 || got > 1 {
				t.Errorf("Relevance(%q, %q) = %v, out of [0,1]", q, text, got)
			}
		}
	}
}
