package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// InitSchema creates all necessary tables and indexes.
// Note: WAL mode is configured in db.go.
func InitSchema(db *sql.DB) error {
	if err := createSubjectsTable(db); err != nil {
		return err
	}
	return createCoursesTable(db)
}

func createSubjectsTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS subjects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create subjects table: %w", err)
	}

	return nil
}

func createCoursesTable(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS courses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		subject TEXT,
		subject_id INTEGER REFERENCES subjects(id),
		teacher_name TEXT NOT NULL,
		file_path TEXT,
		file_name TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_courses_subject_id ON courses(subject_id);
	CREATE INDEX IF NOT EXISTS idx_courses_created_at ON courses(created_at);
	`

	if _, err := db.ExecContext(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create courses table: %w", err)
	}

	return nil
}
