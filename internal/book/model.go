package book

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

type Book struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"size:200;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Author       string         `json:"author" gorm:"size:200"`
	Publisher    string         `json:"publisher" gorm:"size:200"`
	FileURL      string         `json:"file_url" gorm:"size:500;not null"`
	FileSize     int64          `json:"file_size" gorm:"not null"`
	TotalPages   int            `json:"total_pages" gorm:"default:0"`
	TotalWords   int            `json:"total_words" gorm:"default:0"`
	Status       Status         `json:"status" gorm:"type:varchar(20);not null;default:'processing'"`
	ErrorMessage string         `json:"error_message,omitempty" gorm:"type:text"`
	CreatedBy    uint           `json:"created_by" gorm:"not null"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
	Words        []Word         `json:"-" gorm:"foreignKey:BookID"`
}

type Word struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	BookID        uint           `json:"book_id" gorm:"index;not null"`
	Spelling      string         `json:"spelling" gorm:"uniqueIndex;size:100;not null"`
	Phonetic      string         `json:"phonetic" gorm:"size:100"`
	Definitions   datatypes.JSON `json:"definitions" gorm:"type:jsonb;not null"`
	Sentences     datatypes.JSON `json:"sentences" gorm:"type:jsonb"`
	Mnemonic      string         `json:"mnemonic" gorm:"type:text"`
	Difficulty    int            `json:"difficulty" gorm:"default:3"`
	FrequencyRank *int           `json:"frequency_rank,omitempty"`
	Tags          datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	AudioURL      string         `json:"audio_url" gorm:"size:500"`
	ImageURL      string         `json:"image_url" gorm:"size:500"`
	AIGenerated   bool           `json:"ai_generated" gorm:"not null;default:false"`
	QualityScore  float64        `json:"quality_score" gorm:"default:0.5"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
