package types

import "github.com/google/uuid"

// PathUnit is one not-yet-completed curriculum unit in the ordered path.
type PathUnit struct {
	CourseID      uuid.UUID `json:"course_id"`
	CourseTitle   string    `json:"course_title"`
	Subject       string    `json:"subject"`
	UnitIndex     int       `json:"unit_index"`
	IsWeakSubject bool      `json:"is_weak_subject"`
}

type PathPhase struct {
	Name   string   `json:"name"`
	Weeks  int      `json:"weeks"`
	Topics []string `json:"topics"`
}

// LearningPath is the prioritized, pacing-aware course/unit sequence.
// Pacing fields are advisory metadata: the engine reports a mismatch between
// target date and available hours as data, never as an error.
type LearningPath struct {
	Units              []PathUnit  `json:"units"` // capped at 20
	Phases             []PathPhase `json:"phases"`
	TotalDurationWeeks int         `json:"total_duration_weeks"`
	DailyHours         float64     `json:"daily_hours"`
	Source             string      `json:"source"` // "ai" | "fallback"
}

// DailyPlan is the short-lived, non-persisted daily guidance bundle.
type DailyPlan struct {
	TodaysSessions      []*ScheduledSession `json:"todays_sessions"`
	Recommendations     []string            `json:"recommendations"`
	MotivationalMessage string              `json:"motivational_message"`
}
