package types

import (
	"time"

	"github.com/google/uuid"
)

// StudySession is one historical study sitting. A nil EndedAt means the
// session was started but never finished; such sessions are excluded from
// duration averages but still count against consistency.
type StudySession struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Subject   string     `gorm:"type:varchar(120)" json:"subject"`
	StartedAt time.Time  `gorm:"not null;index" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (StudySession) TableName() string { return "study_sessions" }

// DurationMinutes returns the recorded length of a finished session, or
// (0, false) for one without an end time.
func (s StudySession) DurationMinutes() (int, bool) {
	if s.EndedAt == nil {
		return 0, false
	}
	d := s.EndedAt.Sub(s.StartedAt)
	if d < 0 {
		return 0, false
	}
	return int(d.Minutes()), true
}
