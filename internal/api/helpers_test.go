package api

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smart-vocab/internal/book"
	"smart-vocab/internal/db"
	"smart-vocab/internal/feedback"
	"smart-vocab/internal/study"
	"smart-vocab/internal/task"
	"smart-vocab/internal/user"
)

func setupAPIDB(t *testing.T) *gorm.DB {
	dbConn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// MIGRATE ALL MODELS USED IN TESTS!
	if err := dbConn.AutoMigrate(
		&user.User{},
		&book.Book{},
		&book.Word{},
		&study.Progress{},
		&study.StudyPlan{},
		&task.ProcessingTask{},
		&feedback.Feedback{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.DB = dbConn
	return dbConn
}

func resetAPITables(t *testing.T) {
	for _, table := range []string{
		"users", "books", "words", "progresses", "study_plans",
		"processing_tasks", "feedbacks",
	} {
		if err := db.DB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s table: %v", table, err)
		}
	}
}

func seedUser(t *testing.T, username string, role string) user.User {
	u := user.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         user.Role(role),
		IsActive:     true,
		Subscription: user.SubFree,
		CreatedAt:    time.Now(),
	}
	if err := db.DB.Create(&u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedReadyBook(t *testing.T, title string) book.Book {
	b := book.Book{
		Title:     title,
		FileURL:   "/tmp/" + title + ".pdf",
		FileSize:  1024,
		Status:    book.StatusReady,
		CreatedBy: 1,
	}
	if err := db.DB.Create(&b).Error; err != nil {
		t.Fatalf("failed to seed book: %v", err)
	}
	return b
}

func seedAPIWord(t *testing.T, bookID uint, spelling string) book.Word {
	w := book.Word{
		BookID:      bookID,
		Spelling:    spelling,
		Definitions: []byte(`[{"pos":"n.","meaning":"test"}]`),
	}
	if err := db.DB.Create(&w).Error; err != nil {
		t.Fatalf("failed to seed word: %v", err)
	}
	return w
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func toStrUint(x uint) string {
	return fmt.Sprintf("%d", x)
}
