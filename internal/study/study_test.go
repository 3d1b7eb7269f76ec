package study

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smart-vocab/internal/book"
)

var testNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func setupStudyDB(t *testing.T) *gorm.DB {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := dbConn.AutoMigrate(
		&book.Book{},
		&book.Word{},
		&Progress{},
		&StudyPlan{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	resetStudyTables(t, dbConn)
	return dbConn
}

func resetStudyTables(t *testing.T, dbConn *gorm.DB) {
	for _, table := range []string{"progresses", "study_plans", "words", "books"} {
		if err := dbConn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
}

func newTestScheduler(t *testing.T) (*Scheduler, *gorm.DB) {
	dbConn := setupStudyDB(t)
	return NewScheduler(dbConn, func() time.Time { return testNow }), dbConn
}

func seedBook(t *testing.T, dbConn *gorm.DB) book.Book {
	b := book.Book{Title: "CET-4 Core", FileURL: "uploads/books/cet4.pdf", FileSize: 1024, Status: book.StatusReady, CreatedBy: 1}
	if err := dbConn.Create(&b).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return b
}

func seedWord(t *testing.T, dbConn *gorm.DB, bookID uint, spelling string) book.Word {
	w := book.Word{
		BookID:      bookID,
		Spelling:    spelling,
		Definitions: []byte(`[{"pos":"n","meaning":"test"}]`),
	}
	if err := dbConn.Create(&w).Error; err != nil {
		t.Fatalf("failed to seed word %q: %v", spelling, err)
	}
	return w
}

func seedPlan(t *testing.T, dbConn *gorm.DB, userID, bookID uint, active bool) StudyPlan {
	plan := StudyPlan{
		UserID:    userID,
		BookID:    bookID,
		Name:      "daily plan",
		StartDate: testNow.AddDate(0, 0, -7),
		IsActive:  active,
	}
	if err := dbConn.Create(&plan).Error; err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	return plan
}

func seedProgress(t *testing.T, dbConn *gorm.DB, p Progress) Progress {
	if p.History == nil {
		p.History = []byte("[]")
	}
	if p.EaseFactor == 0 {
		p.EaseFactor = DefaultEaseFactor
	}
	if err := dbConn.Create(&p).Error; err != nil {
		t.Fatalf("failed to seed progress: %v", err)
	}
	return p
}
