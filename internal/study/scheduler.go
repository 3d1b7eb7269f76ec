package study

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrInvalidArgument marks a submission rejected before any store mutation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrWordNotFound marks a submission against a word that does not exist.
	ErrWordNotFound = errors.New("word not found")
)

// Scheduler is the spaced-repetition core: it composes study sessions,
// processes review submissions and aggregates per-user statistics.
// The clock is injected so scheduling stays deterministic under test.
type Scheduler struct {
	db    *gorm.DB
	store *ProgressStore
	locks *keyedMutex
	now   func() time.Time
}

// NewScheduler builds a scheduler over the given database. A nil now defaults
// to UTC wall-clock time.
func NewScheduler(db *gorm.DB, now func() time.Time) *Scheduler {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Scheduler{
		db:    db,
		store: NewProgressStore(db),
		locks: newKeyedMutex(),
		now:   now,
	}
}

// Store exposes the underlying progress store for read-only callers.
func (s *Scheduler) Store() *ProgressStore {
	return s.store
}
