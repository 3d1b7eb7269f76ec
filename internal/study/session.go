package study

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"smart-vocab/internal/book"
)

// ProgressSnapshot is the scheduling state shipped with each session word.
// Words without a progress row get the synthetic default below.
type ProgressSnapshot struct {
	Status       Status  `json:"status"`
	EaseFactor   float64 `json:"ease_factor"`
	Interval     int     `json:"interval"`
	TotalReviews int     `json:"total_reviews"`
	CorrectCount int     `json:"correct_count"`
}

// SessionWord is one study item: word display fields plus progress snapshot.
type SessionWord struct {
	WordID      uint             `json:"word_id"`
	Spelling    string           `json:"spelling"`
	Phonetic    string           `json:"phonetic"`
	Definitions datatypes.JSON   `json:"definitions"`
	Sentences   datatypes.JSON   `json:"sentences"`
	Mnemonic    string           `json:"mnemonic"`
	AudioURL    string           `json:"audio_url"`
	Progress    ProgressSnapshot `json:"progress"`
}

// SessionStats summarizes the composed session. TotalDue is the full due
// count for the user, not capped by the session limit.
type SessionStats struct {
	TotalDue    int64 `json:"total_due"`
	NewWords    int   `json:"new_words"`
	ReviewWords int   `json:"review_words"`
}

// Session is one bounded study session.
type Session struct {
	SessionID string        `json:"session_id"`
	Words     []SessionWord `json:"words"`
	Stats     SessionStats  `json:"stats"`
}

func defaultSnapshot() ProgressSnapshot {
	return ProgressSnapshot{
		Status:     StatusNew,
		EaseFactor: DefaultEaseFactor,
		Interval:   0,
	}
}

func sessionWord(w *book.Word, snap ProgressSnapshot) SessionWord {
	return SessionWord{
		WordID:      w.ID,
		Spelling:    w.Spelling,
		Phonetic:    w.Phonetic,
		Definitions: w.Definitions,
		Sentences:   w.Sentences,
		Mnemonic:    w.Mnemonic,
		AudioURL:    w.AudioURL,
		Progress:    snap,
	}
}

// ComposeSession builds a study session of at most limit words: due reviews
// first (earliest due time first), then, if includeNew is set and room
// remains, unseen words from the user's active plan in word-id order. A user
// without an active plan simply gets no backfill.
func (s *Scheduler) ComposeSession(userID uint, limit int, includeNew bool) (*Session, error) {
	now := s.now()
	session := &Session{
		SessionID: uuid.NewString(),
		Words:     []SessionWord{},
	}

	if limit > 0 {
		due, err := s.store.Due(userID, now, limit)
		if err != nil {
			return nil, err
		}

		wordIDs := make([]uint, 0, len(due))
		for _, p := range due {
			wordIDs = append(wordIDs, p.WordID)
		}
		words := make(map[uint]book.Word, len(wordIDs))
		if len(wordIDs) > 0 {
			var rows []book.Word
			if err := s.db.Where("id IN ?", wordIDs).Find(&rows).Error; err != nil {
				return nil, err
			}
			for _, w := range rows {
				words[w.ID] = w
			}
		}

		// Review portion keeps the store's due ordering.
		for _, p := range due {
			w, ok := words[p.WordID]
			if !ok {
				continue
			}
			session.Words = append(session.Words, sessionWord(&w, ProgressSnapshot{
				Status:       p.Status,
				EaseFactor:   p.EaseFactor,
				Interval:     p.Interval,
				TotalReviews: p.TotalReviews,
				CorrectCount: p.CorrectCount,
			}))
		}

		if includeNew && len(session.Words) < limit {
			remaining := limit - len(session.Words)
			fresh, err := s.backfillWords(userID, remaining)
			if err != nil {
				return nil, err
			}
			for i := range fresh {
				session.Words = append(session.Words, sessionWord(&fresh[i], defaultSnapshot()))
			}
		}
	}

	totalDue, err := s.store.CountDue(userID, now)
	if err != nil {
		return nil, err
	}
	session.Stats.TotalDue = totalDue
	for _, w := range session.Words {
		if w.Progress.Status == StatusNew {
			session.Stats.NewWords++
		} else {
			session.Stats.ReviewWords++
		}
	}
	return session, nil
}

// backfillWords picks up to limit unseen words from the active plan's book.
func (s *Scheduler) backfillWords(userID uint, limit int) ([]book.Word, error) {
	plan, err := s.store.ActivePlan(userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}

	started, err := s.store.StartedWordIDs(userID)
	if err != nil {
		return nil, err
	}

	q := s.db.Where("book_id = ?", plan.BookID)
	if len(started) > 0 {
		q = q.Where("id NOT IN ?", started)
	}
	var fresh []book.Word
	if err := q.Order("id ASC").Limit(limit).Find(&fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}
