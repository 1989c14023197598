package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionTypeLesson     = "lesson"
	SessionTypeAssessment = "assessment"
	SessionTypeReview     = "review"
	SessionTypePractice   = "practice"
)

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusSkipped   = "skipped"
	SessionStatusMissed    = "missed"
)

// ScheduledSession is one generated study appointment. Sessions are created
// in batches by schedule generation and afterwards only mutated through
// status transitions; they are never auto-deleted.
type ScheduledSession struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID              uuid.UUID  `gorm:"type:uuid;not null" json:"course_id"`
	LessonID              *uuid.UUID `gorm:"type:uuid" json:"lesson_id,omitempty"`
	ScheduledAt           time.Time  `gorm:"not null;index" json:"scheduled_at"`
	DurationMinutes       int        `gorm:"not null" json:"duration_minutes"`
	Type                  string     `gorm:"type:varchar(20);not null;default:'lesson'" json:"type"`
	Priority              int        `gorm:"not null;default:5" json:"priority"` // 1..10
	Status                string     `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Recommendation        string     `gorm:"type:text" json:"recommendation"`
	ActualDurationMinutes *int       `json:"actual_duration_minutes,omitempty"`
	CreatedAt             time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"not null" json:"updated_at"`
}

func (ScheduledSession) TableName() string { return "scheduled_sessions" }

func ValidSessionType(t string) bool {
	switch t {
	case SessionTypeLesson, SessionTypeAssessment, SessionTypeReview, SessionTypePractice:
		return true
	}
	return false
}

func ValidSessionStatus(s string) bool {
	switch s {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusSkipped, SessionStatusMissed:
		return true
	}
	return false
}
