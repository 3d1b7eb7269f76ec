package feedback

import (
	"time"
)

type Type string

const (
	TypeHelpful       Type = "helpful"
	TypeIncorrect     Type = "incorrect"
	TypeInappropriate Type = "inappropriate"
)

type ContentType string

const (
	ContentDefinition ContentType = "definition"
	ContentSentence   ContentType = "sentence"
	ContentMnemonic   ContentType = "mnemonic"
)

type Feedback struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"index;not null"`
	WordID      uint        `json:"word_id" gorm:"index;not null"`
	Type        Type        `json:"feedback_type" gorm:"type:varchar(20);not null"`
	ContentType ContentType `json:"content_type" gorm:"type:varchar(20);not null"`
	Comment     string      `json:"comment" gorm:"type:text"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Valid reports whether the feedback and content type values are known.
func (f *Feedback) Valid() bool {
	switch f.Type {
	case TypeHelpful, TypeIncorrect, TypeInappropriate:
	default:
		return false
	}
	switch f.ContentType {
	case ContentDefinition, ContentSentence, ContentMnemonic:
	default:
		return false
	}
	return true
}
