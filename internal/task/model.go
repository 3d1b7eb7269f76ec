package task

import (
	"time"

	"gorm.io/datatypes"
)

type Type string

const (
	TypePDFParse      Type = "pdf_parse"
	TypeAIEnrich      Type = "ai_enrich"
	TypeAudioGenerate Type = "audio_generate"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// ProcessingTask tracks one background job (PDF import, AI enrichment).
type ProcessingTask struct {
	ID           uint64         `json:"id" gorm:"primaryKey"`
	TaskID       string         `json:"task_id" gorm:"uniqueIndex;size:64;not null"`
	Type         Type           `json:"task_type" gorm:"type:varchar(20);not null"`
	Status       Status         `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Progress     int            `json:"progress" gorm:"not null;default:0"`
	Payload      datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	Result       datatypes.JSON `json:"result" gorm:"type:jsonb"`
	ErrorMessage string         `json:"error_message,omitempty" gorm:"type:text"`
	CreatedBy    uint           `json:"created_by" gorm:"not null"`
	CreatedAt    time.Time      `json:"createdAt"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
}
