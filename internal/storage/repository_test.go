package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "courses.db"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedCourses(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	math := &Subject{Name: "Mathematics"}
	cs := &Subject{Name: "Computer Science"}
	for _, s := range []*Subject{math, cs} {
		if err := db.SaveSubject(ctx, s); err != nil {
			t.Fatalf("SaveSubject() failed: %v", err)
		}
	}

	courses := []*Course{
		{ID: 1, Title: "Binary Search Trees", Description: "Balanced binary search trees", SubjectID: cs.ID, TeacherName: "Prof. Karim", FileName: "bst.pdf", CreatedAt: 100},
		{ID: 2, Title: "Calculus I", Subject: "Analysis", SubjectID: math.ID, TeacherName: "Dr. Amina", FilePath: "/uploads/calculus.pdf", CreatedAt: 200},
		{ID: 3, Title: "Linear Algebra", SubjectID: math.ID, TeacherName: "Dr. Amina", CreatedAt: 300},
	}
	if err := db.SaveCoursesBatch(ctx, courses); err != nil {
		t.Fatalf("SaveCoursesBatch() failed: %v", err)
	}
}

func TestFindCoursesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedCourses(t, db)

	courses, err := db.FindCourses(context.Background(), CourseFilter{}, 20)
	if err != nil {
		t.Fatalf("FindCourses() failed: %v", err)
	}
	if len(courses) != 3 {
		t.Fatalf("FindCourses() returned %d courses, want 3", len(courses))
	}
	if courses[0].Title != "Linear Algebra" {
		t.Errorf("first course = %q, want newest (Linear Algebra)", courses[0].Title)
	}
	if courses[0].SubjectCategory != "Mathematics" {
		t.Errorf("subject category = %q, want 'Mathematics'", courses[0].SubjectCategory)
	}
}

func TestFindCoursesWithFilters(t *testing.T) {
	db := newTestDB(t)
	seedCourses(t, db)
	ctx := context.Background()

	mathID := int64(1)
	bySubject, err := db.FindCourses(ctx, CourseFilter{SubjectID: &mathID}, 20)
	if err != nil {
		t.Fatalf("FindCourses(subject) failed: %v", err)
	}
	if len(bySubject) != 2 {
		t.Errorf("subject filter returned %d courses, want 2", len(bySubject))
	}

	courseID := int64(1)
	byCourse, err := db.FindCourses(ctx, CourseFilter{CourseID: &courseID}, 20)
	if err != nil {
		t.Fatalf("FindCourses(course) failed: %v", err)
	}
	if len(byCourse) != 1 || byCourse[0].Title != "Binary Search Trees" {
		t.Errorf("course filter returned %v, want the BST course", byCourse)
	}
}

func TestFindCoursesLimit(t *testing.T) {
	db := newTestDB(t)
	seedCourses(t, db)

	courses, err := db.FindCourses(context.Background(), CourseFilter{}, 2)
	if err != nil {
		t.Fatalf("FindCourses() failed: %v", err)
	}
	if len(courses) != 2 {
		t.Errorf("FindCourses() with limit 2 returned %d courses", len(courses))
	}
}

func TestGetCourseByID(t *testing.T) {
	db := newTestDB(t)
	seedCourses(t, db)
	ctx := context.Background()

	course, err := db.GetCourseByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetCourseByID() failed: %v", err)
	}
	if course.Subject != "Analysis" {
		t.Errorf("subject = %q, want 'Analysis'", course.Subject)
	}
	if course.FileReference() != "/uploads/calculus.pdf" {
		t.Errorf("file reference = %q, want the file path", course.FileReference())
	}

	if _, err := db.GetCourseByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCourseByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestSaveCourseAssignsID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	course := &Course{Title: "Databases", TeacherName: "Prof. Chen"}
	if err := db.SaveCourse(ctx, course); err != nil {
		t.Fatalf("SaveCourse() failed: %v", err)
	}
	if course.ID == 0 {
		t.Error("SaveCourse() did not assign an ID")
	}

	count, err := db.CountCourses(ctx)
	if err != nil {
		t.Fatalf("CountCourses() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountCourses() = %d, want 1", count)
	}
}

func TestReady(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ready(context.Background()); err != nil {
		t.Errorf("Ready() failed: %v", err)
	}
}
