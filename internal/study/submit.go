package study

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"smart-vocab/internal/book"
)

const (
	submitAttempts = 3
	submitBackoff  = 50 * time.Millisecond
)

// Snapshot is the post-submission scheduling state returned to the caller.
type Snapshot struct {
	NextReviewAt time.Time `json:"next_review_at"`
	Interval     int       `json:"interval"`
	EaseFactor   float64   `json:"ease_factor"`
	Status       Status    `json:"status"`
}

// Submit records one review result for a (user, word) pair. The record is
// created lazily on first submission. Validation happens before any store
// mutation; persistence is retried a bounded number of times on transient
// store errors. Concurrent submissions for the same pair are serialized.
func (s *Scheduler) Submit(userID, wordID uint, quality, timeSpent int) (*Snapshot, error) {
	if quality < 0 || quality > 5 {
		return nil, fmt.Errorf("%w: quality %d outside [0,5]", ErrInvalidArgument, quality)
	}
	if timeSpent < 0 {
		return nil, fmt.Errorf("%w: negative time spent", ErrInvalidArgument)
	}

	var w book.Word
	if err := s.db.First(&w, wordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrWordNotFound, wordID)
		}
		return nil, err
	}

	key := progressKey(userID, wordID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	now := s.now()

	p, err := s.store.Get(userID, wordID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &Progress{
			UserID:     userID,
			WordID:     wordID,
			Status:     StatusNew,
			EaseFactor: DefaultEaseFactor,
			History:    []byte("[]"),
		}
	}

	newInterval, newEase, newReps, nextReviewAt := CalculateNextReview(
		quality, p.Interval, p.EaseFactor, p.Repetitions, now)
	newStatus := NextStatus(quality, p.Status)

	p.Status = newStatus
	p.NextReviewAt = &nextReviewAt
	p.EaseFactor = newEase
	p.Interval = newInterval
	p.Repetitions = newReps
	p.LastReviewAt = &now
	p.TotalReviews++
	if quality >= PassThreshold {
		p.CorrectCount++
	}
	if err := p.AppendHistory(HistoryEntry{
		Timestamp:  now,
		Quality:    quality,
		TimeSpent:  timeSpent,
		Interval:   newInterval,
		EaseFactor: newEase,
	}); err != nil {
		return nil, err
	}

	if err := s.persistWithRetry(p); err != nil {
		return nil, err
	}

	return &Snapshot{
		NextReviewAt: nextReviewAt,
		Interval:     newInterval,
		EaseFactor:   newEase,
		Status:       newStatus,
	}, nil
}

// persistWithRetry saves a progress row, retrying transient store failures.
// The last error is surfaced to the caller rather than dropped.
func (s *Scheduler) persistWithRetry(p *Progress) error {
	var err error
	for attempt := 1; attempt <= submitAttempts; attempt++ {
		if err = s.store.Save(p); err == nil {
			return nil
		}
		if attempt < submitAttempts {
			time.Sleep(submitBackoff * time.Duration(attempt))
		}
	}
	return fmt.Errorf("persist progress after %d attempts: %w", submitAttempts, err)
}
