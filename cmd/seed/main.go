// Seed loads course records from a JSON export into the local SQLite
// corpus. The input mirrors the platform's course entity: subjects first,
// then courses referencing them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/smartcampus/coursesearch/internal/config"
	"github.com/smartcampus/coursesearch/internal/logger"
	"github.com/smartcampus/coursesearch/internal/storage"
)

type seedFile struct {
	Subjects []seedSubject `json:"subjects"`
	Courses  []seedCourse  `json:"courses"`
}

type seedSubject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type seedCourse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	SubjectID   int64  `json:"subjectId"`
	Teacher     string `json:"teacher"`
	FilePath    string `json:"filePath"`
	FileName    string `json:"originalFileName"`
}

func main() {
	file := flag.String("file", "courses.json", "path to the JSON course export")
	timeout := flag.Duration("timeout", time.Minute, "overall seeding timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel).WithModule("seed")

	data, err := os.ReadFile(*file)
	if err != nil {
		log.WithError(err).Fatal("Failed to read seed file")
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.WithError(err).Fatal("Failed to parse seed file")
	}

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	for _, s := range seed.Subjects {
		subject := &storage.Subject{ID: s.ID, Name: s.Name}
		if err := db.SaveSubject(ctx, subject); err != nil {
			log.WithError(err).WithField("subject", s.Name).Fatal("Failed to save subject")
		}
	}

	courses := make([]*storage.Course, 0, len(seed.Courses))
	for _, c := range seed.Courses {
		courses = append(courses, &storage.Course{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Subject:     c.Subject,
			SubjectID:   c.SubjectID,
			TeacherName: c.Teacher,
			FilePath:    c.FilePath,
			FileName:    c.FileName,
		})
	}
	if err := db.SaveCoursesBatch(ctx, courses); err != nil {
		log.WithError(err).Fatal("Failed to save courses")
	}

	total, err := db.CountCourses(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to count courses")
	}

	log.WithField("subjects", len(seed.Subjects)).
		WithField("loaded", len(courses)).
		WithField("total", total).
		Info("Corpus seeded")
}
