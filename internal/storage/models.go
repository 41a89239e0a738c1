package storage

import "errors"

// Common errors
var (
	// ErrNotFound is returned when a resource is not found in the database
	ErrNotFound = errors.New("resource not found")
)

// Subject represents a subject category record
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Course represents a course record in the corpus.
// Description, Subject, SubjectCategory, FilePath and FileName are optional;
// consumers must tolerate them being empty.
type Course struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Subject         string `json:"subject,omitempty"`          // free-text subject label
	SubjectID       int64  `json:"subject_id,omitempty"`       // 0 = no subject relation
	SubjectCategory string `json:"subject_category,omitempty"` // name of the related subject
	TeacherName     string `json:"teacher_name"`
	FilePath        string `json:"file_path,omitempty"`
	FileName        string `json:"file_name,omitempty"` // original uploaded file name
	CreatedAt       int64  `json:"created_at"`          // unix timestamp
}

// FileReference returns the best available reference to the course material.
func (c *Course) FileReference() string {
	if c.FileName != "" {
		return c.FileName
	}
	return c.FilePath
}

// CourseFilter narrows a corpus fetch.
// Nil fields match everything.
type CourseFilter struct {
	SubjectID *int64
	CourseID  *int64
}
