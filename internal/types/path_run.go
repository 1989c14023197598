package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	GenerationSourceAI       = "ai"
	GenerationSourceFallback = "fallback"
)

// PathRun is the persisted record of one learning-path generation: which
// strategy produced it and the phase layout it returned.
type PathRun struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ExamType           string         `gorm:"type:varchar(60)" json:"exam_type"`
	Source             string         `gorm:"type:varchar(20);not null" json:"source"` // "ai" | "fallback"
	Phases             datatypes.JSON `gorm:"type:jsonb" json:"phases"`
	TotalDurationWeeks int            `gorm:"not null;default:0" json:"total_duration_weeks"`
	DailyHours         float64        `gorm:"not null;default:0" json:"daily_hours"`
	CreatedAt          time.Time      `gorm:"not null" json:"created_at"`
}

func (PathRun) TableName() string { return "path_runs" }
