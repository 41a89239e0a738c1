// Package answer turns ranked course candidates into the structured
// answer contract, either through an LLM round trip or through the
// deterministic synthesizer. Every code path produces a
// StructuredResponse; no path may fail past the engine boundary.
package answer

// RelatedCourse is a compact summary of a runner-up candidate.
type RelatedCourse struct {
	Title         string `json:"title"`
	Teacher       string `json:"teacher"`
	Subject       string `json:"subject"`
	Relevance     int    `json:"relevance"` // 0-100
	FileReference string `json:"fileReference,omitempty"`
}

// StructuredResponse is the sole output contract of the answer pipeline.
// Both the LLM-backed path and the fallback synthesizer produce it.
type StructuredResponse struct {
	Answer         string          `json:"answer"`
	Source         string          `json:"source"`
	Teacher        string          `json:"teacher"`
	Subject        string          `json:"subject"`
	Location       string          `json:"location"`
	Summary        string          `json:"summary"`
	Confidence     float64         `json:"confidence"` // in [0,1]
	CourseAnalysis string          `json:"courseAnalysis,omitempty"`
	RelatedCourses []RelatedCourse `json:"relatedCourses"`
	ExactMatch     bool            `json:"exactMatch"`
}
