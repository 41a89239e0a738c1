package answer

import (
	"strings"
	"testing"
)

func TestBuildPromptContainsContract(t *testing.T) {
	prompt := BuildPrompt("binary search tree", candidateFixture())

	if !strings.Contains(prompt, "binary search tree") {
		t.Error("prompt does not contain the query")
	}
	for _, key := range []string{"ANSWER:", "SOURCE:", "TEACHER:", "SUBJECT:", "LOCATION:", "SUMMARY:", "CONFIDENCE:"} {
		if !strings.Contains(prompt, key) {
			t.Errorf("prompt missing format key %q", key)
		}
	}
}

func TestBuildPromptEnumeratesCandidates(t *testing.T) {
	prompt := BuildPrompt("binary search tree", candidateFixture())

	for _, want := range []string{
		"1. Title: Binary Search Trees",
		"Teacher: Dr. Chen",
		"File: bst-notes.pdf",
		"Match: title (100% relevance)",
		"2. Title: Graph Algorithms",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptSkipsEmptyFields(t *testing.T) {
	prompt := BuildPrompt("algorithms", candidateFixture()[2:3])
	if strings.Contains(prompt, "Description:") {
		t.Error("prompt lists an empty description field")
	}
	if strings.Contains(prompt, "Teacher:") {
		t.Error("prompt lists an empty teacher field")
	}
}

func TestBuildPromptEmptyCandidates(t *testing.T) {
	prompt := BuildPrompt("quantum computing", nil)
	if !strings.Contains(prompt, "none matched") {
		t.Error("prompt does not state that no records matched")
	}
	if !strings.Contains(prompt, "CONFIDENCE:") {
		t.Error("format contract missing for empty candidate prompt")
	}
}
