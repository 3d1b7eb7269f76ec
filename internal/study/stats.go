package study

// UserStats aggregates a user's learning state. Counts cover only words the
// user has started (words without a progress row are not included in New).
// DailyStreak and TimeSpentMinutes are reserved and always zero for now.
type UserStats struct {
	TotalWords       int64   `json:"total_words"`
	Mastered         int64   `json:"mastered"`
	Learning         int64   `json:"learning"`
	New              int64   `json:"new"`
	DailyStreak      int     `json:"daily_streak"`
	AccuracyRate     float64 `json:"accuracy_rate"`
	TimeSpentMinutes int     `json:"time_spent_minutes"`
}

// Stats derives the per-user counters from the progress store.
func (s *Scheduler) Stats(userID uint) (*UserStats, error) {
	total, err := s.store.CountAll(userID)
	if err != nil {
		return nil, err
	}
	mastered, err := s.store.CountByStatus(userID, StatusMastered)
	if err != nil {
		return nil, err
	}
	learning, err := s.store.CountByStatus(userID, StatusLearning, StatusReviewing)
	if err != nil {
		return nil, err
	}
	fresh, err := s.store.CountByStatus(userID, StatusNew)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		TotalWords: total,
		Mastered:   mastered,
		Learning:   learning,
		New:        fresh,
	}

	correct, reviews, err := s.store.ReviewTotals(userID)
	if err != nil {
		return nil, err
	}
	if reviews > 0 {
		stats.AccuracyRate = float64(correct) / float64(reviews)
	}
	return stats, nil
}
