package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/okaforcj/examforge-backend/internal/types"
)

const (
	defaultSessionMinutes  = 30
	defaultRetentionRate   = 0.5
	defaultConsistency     = 0.5
	maxPeakHours           = 3
	maxResultsWindow       = 50
	weakSubjectThreshold   = 65.0
	strongSubjectThreshold = 75.0
	minStrongDataPoints    = 2
)

// AnalyzePatterns derives a LearningProfile from raw history. It is a pure
// function: deterministic for identical inputs, no side effects, and it never
// fails — empty history yields the documented neutral defaults. Sessions and
// results are expected newest-first, as the repos return them.
func AnalyzePatterns(sessions []*types.StudySession, results []*types.AssessmentResult) *types.LearningProfile {
	if len(results) > maxResultsWindow {
		results = results[:maxResultsWindow]
	}

	profile := &types.LearningProfile{
		OptimalStudyTimes:      []string{},
		AverageSessionDuration: defaultSessionMinutes,
		RetentionRate:          defaultRetentionRate,
		ConsistencyScore:       defaultConsistency,
		PeakPerformanceHours:   []int{},
		WeakSubjects:           []string{},
		StrongSubjects:         []string{},
	}

	profile.PeakPerformanceHours = peakHours(sessions)
	for _, h := range profile.PeakPerformanceHours {
		profile.OptimalStudyTimes = append(profile.OptimalStudyTimes, fmt.Sprintf("%02d:00", h))
	}

	if avg, ok := averageDuration(sessions); ok {
		profile.AverageSessionDuration = avg
	}
	if len(sessions) > 0 {
		completed := 0
		for _, s := range sessions {
			if s.EndedAt != nil {
				completed++
			}
		}
		profile.ConsistencyScore = float64(completed) / float64(len(sessions))
	}

	if len(results) > 0 {
		sum := 0.0
		for _, r := range results {
			sum += r.Ratio()
		}
		profile.RetentionRate = sum / float64(len(results))
	}

	switch {
	case profile.RetentionRate > 0.8:
		profile.PreferredDifficulty = types.DifficultyHard
	case profile.RetentionRate > 0.6:
		profile.PreferredDifficulty = types.DifficultyMedium
	default:
		profile.PreferredDifficulty = types.DifficultyEasy
	}

	profile.WeakSubjects, profile.StrongSubjects = classifySubjects(results)

	return profile
}

// peakHours returns up to three start-hours ordered by descending frequency;
// ties keep the order in which an hour was first seen.
func peakHours(sessions []*types.StudySession) []int {
	counts := map[int]int{}
	var order []int
	for _, s := range sessions {
		h := s.StartedAt.Hour()
		if _, seen := counts[h]; !seen {
			order = append(order, h)
		}
		counts[h]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxPeakHours {
		order = order[:maxPeakHours]
	}
	out := make([]int, len(order))
	copy(out, order)
	return out
}

// averageDuration is the mean length of finished sessions, rounded to whole
// minutes. Unfinished sessions are excluded entirely.
func averageDuration(sessions []*types.StudySession) (int, bool) {
	total := 0
	completed := 0
	for _, s := range sessions {
		if minutes, ok := s.DurationMinutes(); ok {
			total += minutes
			completed++
		}
	}
	if completed == 0 {
		return 0, false
	}
	return int(math.Round(float64(total) / float64(completed))), true
}

// classifySubjects partitions subjects by recent average percentage:
// below 65 is weak; at or above 75 with at least two data points is strong.
// Output order follows first occurrence in the result window.
func classifySubjects(results []*types.AssessmentResult) (weak, strong []string) {
	weak = []string{}
	strong = []string{}

	type agg struct {
		sum float64
		n   int
	}
	bysubject := map[string]*agg{}
	var order []string
	for _, r := range results {
		if r.Subject == "" {
			continue
		}
		a, ok := bysubject[r.Subject]
		if !ok {
			a = &agg{}
			bysubject[r.Subject] = a
			order = append(order, r.Subject)
		}
		a.sum += r.Ratio() * 100
		a.n++
	}

	for _, subject := range order {
		a := bysubject[subject]
		avg := a.sum / float64(a.n)
		switch {
		case avg < weakSubjectThreshold:
			weak = append(weak, subject)
		case avg >= strongSubjectThreshold && a.n >= minStrongDataPoints:
			strong = append(strong, subject)
		}
	}
	return weak, strong
}
