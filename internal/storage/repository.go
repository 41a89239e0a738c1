package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// FindCourses returns up to limit courses matching the filter, newest first.
// Retrieval order (created_at DESC, then id DESC for a stable order within
// the same second) is what ranking falls back to on score ties.
func (db *DB) FindCourses(ctx context.Context, filter CourseFilter, limit int) ([]Course, error) {
	query := `
		SELECT c.id, c.title, COALESCE(c.description, ''), COALESCE(c.subject, ''),
		       COALESCE(c.subject_id, 0), COALESCE(s.name, ''),
		       c.teacher_name, COALESCE(c.file_path, ''), COALESCE(c.file_name, ''),
		       c.created_at
		FROM courses c
		LEFT JOIN subjects s ON s.id = c.subject_id
		WHERE (?1 IS NULL OR c.subject_id = ?1)
		  AND (?2 IS NULL OR c.id = ?2)
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT ?3
	`

	var subjectID, courseID any
	if filter.SubjectID != nil {
		subjectID = *filter.SubjectID
	}
	if filter.CourseID != nil {
		courseID = *filter.CourseID
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, subjectID, courseID, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query courses", "error", err)
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var courses []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Subject,
			&c.SubjectID, &c.SubjectCategory,
			&c.TeacherName, &c.FilePath, &c.FileName,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	// Warn on slow queries (>100ms)
	if duration := time.Since(start); duration > 100*time.Millisecond {
		slog.WarnContext(ctx, "slow database operation",
			"operation", "FindCourses",
			"duration_ms", duration.Milliseconds(),
			"count", len(courses))
	}

	return courses, nil
}

// GetCourseByID retrieves a course by ID.
// Returns ErrNotFound when no course matches.
func (db *DB) GetCourseByID(ctx context.Context, id int64) (*Course, error) {
	query := `
		SELECT c.id, c.title, COALESCE(c.description, ''), COALESCE(c.subject, ''),
		       COALESCE(c.subject_id, 0), COALESCE(s.name, ''),
		       c.teacher_name, COALESCE(c.file_path, ''), COALESCE(c.file_name, ''),
		       c.created_at
		FROM courses c
		LEFT JOIN subjects s ON s.id = c.subject_id
		WHERE c.id = ?
	`

	var c Course
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.Subject,
		&c.SubjectID, &c.SubjectCategory,
		&c.TeacherName, &c.FilePath, &c.FileName,
		&c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to query course", "course_id", id, "error", err)
		return nil, fmt.Errorf("query course: %w", err)
	}

	return &c, nil
}

// SaveCourse inserts or updates a course record
func (db *DB) SaveCourse(ctx context.Context, course *Course) error {
	if course.CreatedAt == 0 {
		course.CreatedAt = time.Now().Unix()
	}

	if course.ID == 0 {
		query := `
			INSERT INTO courses (title, description, subject, subject_id, teacher_name, file_path, file_name, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		res, err := db.conn.ExecContext(ctx, query,
			course.Title, nullable(course.Description), nullable(course.Subject),
			nullableID(course.SubjectID), course.TeacherName,
			nullable(course.FilePath), nullable(course.FileName), course.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert course: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		course.ID = id
		return nil
	}

	query := `
		INSERT INTO courses (id, title, description, subject, subject_id, teacher_name, file_path, file_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			subject = excluded.subject,
			subject_id = excluded.subject_id,
			teacher_name = excluded.teacher_name,
			file_path = excluded.file_path,
			file_name = excluded.file_name
	`
	_, err := db.conn.ExecContext(ctx, query,
		course.ID, course.Title, nullable(course.Description), nullable(course.Subject),
		nullableID(course.SubjectID), course.TeacherName,
		nullable(course.FilePath), nullable(course.FileName), course.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to save course", "course_id", course.ID, "error", err)
		return fmt.Errorf("save course: %w", err)
	}
	return nil
}

// SaveCoursesBatch inserts or updates multiple course records in one transaction.
func (db *DB) SaveCoursesBatch(ctx context.Context, courses []*Course) error {
	if len(courses) == 0 {
		return nil
	}

	query := `
		INSERT INTO courses (id, title, description, subject, subject_id, teacher_name, file_path, file_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			subject = excluded.subject,
			subject_id = excluded.subject_id,
			teacher_name = excluded.teacher_name,
			file_path = excluded.file_path,
			file_name = excluded.file_name
	`

	start := time.Now()
	err := db.ExecBatchContext(ctx, query, func(stmt *sql.Stmt) error {
		now := time.Now().Unix()
		for _, course := range courses {
			createdAt := course.CreatedAt
			if createdAt == 0 {
				createdAt = now
			}
			if _, err := stmt.ExecContext(ctx,
				course.ID, course.Title, nullable(course.Description), nullable(course.Subject),
				nullableID(course.SubjectID), course.TeacherName,
				nullable(course.FilePath), nullable(course.FileName), createdAt); err != nil {
				return fmt.Errorf("save course %d: %w", course.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "batch operation completed",
		"operation", "SaveCoursesBatch",
		"count", len(courses),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// CountCourses returns the total number of courses in the corpus
func (db *DB) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// SaveSubject inserts or updates a subject record
func (db *DB) SaveSubject(ctx context.Context, subject *Subject) error {
	if subject.ID == 0 {
		res, err := db.conn.ExecContext(ctx, "INSERT INTO subjects (name) VALUES (?)", subject.Name)
		if err != nil {
			return fmt.Errorf("insert subject: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		subject.ID = id
		return nil
	}

	query := `
		INSERT INTO subjects (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`
	if _, err := db.conn.ExecContext(ctx, query, subject.ID, subject.Name); err != nil {
		return fmt.Errorf("save subject: %w", err)
	}
	return nil
}

// GetSubjectByID retrieves a subject by ID.
// Returns ErrNotFound when no subject matches.
func (db *DB) GetSubjectByID(ctx context.Context, id int64) (*Subject, error) {
	var s Subject
	err := db.conn.QueryRowContext(ctx, "SELECT id, name FROM subjects WHERE id = ?", id).Scan(&s.ID, &s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query subject: %w", err)
	}
	return &s, nil
}

// nullable converts an empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableID converts a zero ID to NULL for optional foreign keys.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
