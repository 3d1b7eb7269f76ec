package study

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Progress is the per-(user, word) scheduling record. The (UserID, WordID)
// pair is unique; a raced duplicate insert is folded into an update.
type Progress struct {
	ID           uint64         `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"uniqueIndex:idx_user_word;index:idx_user_next_review;not null"`
	WordID       uint           `json:"word_id" gorm:"uniqueIndex:idx_user_word;not null"`
	Status       Status         `json:"status" gorm:"not null;default:0;index:idx_user_status"`
	NextReviewAt *time.Time     `json:"next_review_at" gorm:"index:idx_user_next_review"`
	EaseFactor   float64        `json:"ease_factor" gorm:"not null;default:2.5"`
	Interval     int            `json:"interval" gorm:"not null;default:0"`
	Repetitions  int            `json:"repetitions" gorm:"not null;default:0"`
	LastReviewAt *time.Time     `json:"last_review_at"`
	TotalReviews int            `json:"total_reviews" gorm:"not null;default:0"`
	CorrectCount int            `json:"correct_count" gorm:"not null;default:0"`
	History      datatypes.JSON `json:"history" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// HistoryEntry is one review event in the append-only history.
type HistoryEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Quality    int       `json:"quality"`
	TimeSpent  int       `json:"time_spent"`
	Interval   int       `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`
}

// AppendHistory appends one entry to the review history, preserving order.
func (p *Progress) AppendHistory(e HistoryEntry) error {
	var entries []HistoryEntry
	if len(p.History) > 0 {
		if err := json.Unmarshal(p.History, &entries); err != nil {
			return err
		}
	}
	entries = append(entries, e)
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	p.History = datatypes.JSON(raw)
	return nil
}

// HistoryEntries decodes the stored review history.
func (p *Progress) HistoryEntries() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if len(p.History) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(p.History, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StudyPlan binds a user to a word book. DailyNew/DailyReview are advisory
// targets surfaced to the client; session size is capped by the request limit.
type StudyPlan struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	BookID      uint       `json:"book_id" gorm:"not null"`
	Name        string     `json:"name" gorm:"size:200;not null"`
	DailyNew    int        `json:"daily_new" gorm:"not null;default:20"`
	DailyReview int        `json:"daily_review" gorm:"not null;default:100"`
	StartDate   time.Time  `json:"start_date"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
