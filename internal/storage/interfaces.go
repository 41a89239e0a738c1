// Package storage provides repository interfaces for data access abstraction.
// These interfaces enable dependency inversion and facilitate testing by
// decoupling the search pipeline from the concrete SQLite implementation.
package storage

import (
	"context"
)

// CourseRepository defines the interface for course corpus access.
// The search pipeline only reads; the write methods exist for seeding
// and for the entity-management collaborator.
type CourseRepository interface {
	// FindCourses returns up to limit courses matching the filter,
	// newest first.
	FindCourses(ctx context.Context, filter CourseFilter, limit int) ([]Course, error)
	GetCourseByID(ctx context.Context, id int64) (*Course, error)
	SaveCourse(ctx context.Context, course *Course) error
	SaveCoursesBatch(ctx context.Context, courses []*Course) error
	CountCourses(ctx context.Context) (int, error)
}

// SubjectRepository defines the interface for subject category access.
type SubjectRepository interface {
	SaveSubject(ctx context.Context, subject *Subject) error
	GetSubjectByID(ctx context.Context, id int64) (*Subject, error)
}

// HealthRepository defines the interface for health check operations.
type HealthRepository interface {
	// Ping verifies database connection is alive.
	Ping(ctx context.Context) error

	// Ready checks if database is ready to serve queries.
	Ready(ctx context.Context) error
}

// Repository is the aggregate interface combining all repository interfaces.
type Repository interface {
	CourseRepository
	SubjectRepository
	HealthRepository
	Close() error
}

// Ensure DB implements all repository interfaces at compile time.
var (
	_ CourseRepository  = (*DB)(nil)
	_ SubjectRepository = (*DB)(nil)
	_ HealthRepository  = (*DB)(nil)
	_ Repository        = (*DB)(nil)
)
