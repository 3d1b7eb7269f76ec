package study

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressStore owns persistence of Progress rows and study plans.
type ProgressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// Get returns the progress row for a (user, word) pair, or nil when the pair
// has never been reviewed.
func (s *ProgressStore) Get(userID, wordID uint) (*Progress, error) {
	var p Progress
	err := s.db.Where("user_id = ? AND word_id = ?", userID, wordID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts a progress row. A concurrent insert of the same (user, word)
// pair degrades to an update of that row, never a second row.
func (s *ProgressStore) Save(p *Progress) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "next_review_at", "ease_factor", "interval", "repetitions",
			"last_review_at", "total_reviews", "correct_count", "history", "updated_at",
		}),
	}).Save(p).Error
}

// Due returns up to limit records that are due for review, earliest first.
// Ties on the due time are broken by word id so session order is stable.
func (s *ProgressStore) Due(userID uint, now time.Time, limit int) ([]Progress, error) {
	var due []Progress
	err := s.db.
		Where("user_id = ? AND next_review_at <= ? AND status < ?", userID, now, StatusMastered).
		Order("next_review_at ASC, word_id ASC").
		Limit(limit).
		Find(&due).Error
	return due, err
}

// CountDue counts every due record, independent of any session limit.
func (s *ProgressStore) CountDue(userID uint, now time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&Progress{}).
		Where("user_id = ? AND next_review_at <= ? AND status < ?", userID, now, StatusMastered).
		Count(&count).Error
	return count, err
}

// StartedWordIDs returns the ids of every word the user has a progress row for.
func (s *ProgressStore) StartedWordIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&Progress{}).
		Where("user_id = ?", userID).
		Pluck("word_id", &ids).Error
	return ids, err
}

// CountByStatus counts the user's progress rows with any of the given statuses.
func (s *ProgressStore) CountByStatus(userID uint, statuses ...Status) (int64, error) {
	var count int64
	err := s.db.Model(&Progress{}).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Count(&count).Error
	return count, err
}

// CountAll counts every progress row the user has.
func (s *ProgressStore) CountAll(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&Progress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ReviewTotals sums correct and total review counters across the user's rows.
func (s *ProgressStore) ReviewTotals(userID uint) (correct, total int64, err error) {
	var sums struct {
		Correct int64
		Total   int64
	}
	err = s.db.Model(&Progress{}).
		Select("COALESCE(SUM(correct_count), 0) AS correct, COALESCE(SUM(total_reviews), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&sums).Error
	return sums.Correct, sums.Total, err
}

// ActivePlan returns the user's active study plan, or nil when none exists.
// If the store holds more than one active plan the lowest id wins.
func (s *ProgressStore) ActivePlan(userID uint) (*StudyPlan, error) {
	var plan StudyPlan
	err := s.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id ASC").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
