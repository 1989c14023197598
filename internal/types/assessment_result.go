package types

import (
	"time"

	"github.com/google/uuid"
)

// AssessmentResult is an immutable, append-only quiz/assessment outcome.
type AssessmentResult struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject     string    `gorm:"type:varchar(120)" json:"subject"`
	Score       float64   `gorm:"not null" json:"score"`
	MaxScore    float64   `gorm:"not null" json:"max_score"`
	CompletedAt time.Time `gorm:"not null;index" json:"completed_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (AssessmentResult) TableName() string { return "assessment_results" }

// Ratio returns score/maxScore clamped into [0,1]; 0 when MaxScore is 0.
func (r AssessmentResult) Ratio() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	ratio := r.Score / r.MaxScore
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
