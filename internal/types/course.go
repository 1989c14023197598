package types

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Subject    string    `gorm:"type:varchar(120);not null" json:"subject"`
	ExamType   string    `gorm:"type:varchar(60);index" json:"exam_type"`
	TotalUnits int       `gorm:"not null;default:0" json:"total_units"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Course) TableName() string { return "courses" }

// Enrollment links a user to a course together with their progress through
// its units. Read-mostly from the engine's perspective.
type Enrollment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID       uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Course         *Course   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	CompletedUnits int       `gorm:"not null;default:0" json:"completed_units"`
	EnrolledAt     time.Time `gorm:"not null" json:"enrolled_at"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollments" }

// CompletionRate reports completed/total. A course with no declared units is
// treated as fully complete so the scheduler never picks it.
func (e Enrollment) CompletionRate() float64 {
	if e.Course == nil || e.Course.TotalUnits <= 0 {
		return 1
	}
	rate := float64(e.CompletedUnits) / float64(e.Course.TotalUnits)
	if rate > 1 {
		return 1
	}
	return rate
}
