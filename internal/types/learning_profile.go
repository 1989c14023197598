package types

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// LearningProfile is the derived statistical summary of a user's study and
// assessment history. It is recomputed from scratch on every request and
// never persisted or cached, so it always reflects current history.
type LearningProfile struct {
	OptimalStudyTimes      []string `json:"optimal_study_times"` // "HH:00"
	AverageSessionDuration int      `json:"average_session_duration"` // minutes
	PreferredDifficulty    string   `json:"preferred_difficulty"`
	RetentionRate          float64  `json:"retention_rate"`   // 0..1
	ConsistencyScore       float64  `json:"consistency_score"` // 0..1
	PeakPerformanceHours   []int    `json:"peak_performance_hours"` // 0..23
	WeakSubjects           []string `json:"weak_subjects"`
	StrongSubjects         []string `json:"strong_subjects"`
}

// IsWeakSubject reports whether subject is in the weak set.
func (p *LearningProfile) IsWeakSubject(subject string) bool {
	for _, s := range p.WeakSubjects {
		if s == subject {
			return true
		}
	}
	return false
}
