package study

import (
	"time"
)

// Status is the learning state of a word for one user.
type Status int

const (
	StatusNew Status = iota
	StatusLearning
	StatusReviewing
	StatusMastered
)

const (
	// MinEaseFactor is the SM-2 lower bound for the difficulty factor.
	MinEaseFactor = 1.3
	// DefaultEaseFactor is assigned to words that have never been reviewed.
	DefaultEaseFactor = 2.5
	// PassThreshold is the minimum quality that counts as a successful recall.
	PassThreshold = 3
)

// CalculateNextReview runs one SM-2 step.
//
// quality is the 0-5 self-assessment. A quality below PassThreshold resets the
// repetition streak and schedules the word for tomorrow without touching the
// ease factor. A passing quality updates the ease factor (floored at
// MinEaseFactor) and grows the interval: 1 day, then 6 days, then
// floor(interval * ease).
func CalculateNextReview(quality, prevInterval int, prevEase float64, prevRepetitions int, now time.Time) (newInterval int, newEase float64, newRepetitions int, nextReviewAt time.Time) {
	if quality < PassThreshold {
		newInterval = 1
		newEase = prevEase
		newRepetitions = 0
	} else {
		q := float64(quality)
		newEase = prevEase + (0.1 - (5-q)*(0.08+(5-q)*0.02))
		if newEase < MinEaseFactor {
			newEase = MinEaseFactor
		}

		switch prevRepetitions {
		case 0:
			newInterval = 1
		case 1:
			newInterval = 6
		default:
			newInterval = int(float64(prevInterval) * newEase)
		}

		newRepetitions = prevRepetitions + 1
	}

	nextReviewAt = now.AddDate(0, 0, newInterval)
	return newInterval, newEase, newRepetitions, nextReviewAt
}

// NextStatus maps a review quality onto the status transition graph.
//
// Mastery is not sticky: a failed review demotes even a mastered word back to
// learning. Promotion to mastered requires quality >= 4 on a word that already
// reached the reviewing stage.
func NextStatus(quality int, prev Status) Status {
	switch {
	case quality < PassThreshold:
		return StatusLearning
	case quality == PassThreshold:
		return StatusReviewing
	case prev >= StatusReviewing:
		return StatusMastered
	default:
		return StatusReviewing
	}
}
