package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AICallLog records one narrator round-trip, including failures, for
// diagnostics. Parse failures are logged here with Success=false even though
// the calling operation still succeeds through its fallback.
type AICallLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind       string         `gorm:"type:varchar(40);not null" json:"kind"` // "schedule" | "learning_path"
	Prompt     string         `gorm:"type:text" json:"prompt"`
	Response   datatypes.JSON `gorm:"type:jsonb" json:"response"`
	Success    bool           `gorm:"not null;default:false" json:"success"`
	ErrorText  string         `gorm:"type:text" json:"error_text"`
	DurationMS int64          `gorm:"not null;default:0" json:"duration_ms"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_logs" }
