package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smart-vocab/internal/book"
	"smart-vocab/internal/config"
	"smart-vocab/internal/feedback"
	"smart-vocab/internal/study"
	"smart-vocab/internal/task"
	"smart-vocab/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	conn, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := conn.AutoMigrate(
		&user.User{},
		&book.Book{},
		&book.Word{},
		&study.Progress{},
		&study.StudyPlan{},
		&task.ProcessingTask{},
		&feedback.Feedback{},
	); err != nil {
		return err
	}

	DB = conn
	log.Printf("Database connected and migrated")
	return nil
}
