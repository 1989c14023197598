package types

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a recurring weekly window in which the user is willing
// to study. The full set for a user is replaced atomically, never patched.
type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	DayOfWeek int       `gorm:"not null" json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:MM"
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:MM", always after StartTime
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AvailabilitySlot) TableName() string { return "availability_slots" }

// Minutes returns the window length in whole minutes, 0 if either bound is
// malformed.
func (s AvailabilitySlot) Minutes() int {
	start, err1 := time.Parse("15:04", s.StartTime)
	end, err2 := time.Parse("15:04", s.EndTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
