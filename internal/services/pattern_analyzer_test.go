package services

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/okaforcj/examforge-backend/internal/types"
)

func session(day int, hour int, minutes int) *types.StudySession {
	start := time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
	s := &types.StudySession{StartedAt: start}
	if minutes >= 0 {
		end := start.Add(time.Duration(minutes) * time.Minute)
		s.EndedAt = &end
	}
	return s
}

func result(subject string, score, max float64) *types.AssessmentResult {
	return &types.AssessmentResult{Subject: subject, Score: score, MaxScore: max, CompletedAt: time.Now()}
}

func TestAnalyzePatternsDefaults(t *testing.T) {
	p := AnalyzePatterns(nil, nil)

	if p.AverageSessionDuration != 30 {
		t.Fatalf("avg duration = %d, want 30", p.AverageSessionDuration)
	}
	if p.RetentionRate != 0.5 {
		t.Fatalf("retention = %v, want 0.5", p.RetentionRate)
	}
	if p.ConsistencyScore != 0.5 {
		t.Fatalf("consistency = %v, want 0.5", p.ConsistencyScore)
	}
	if len(p.PeakPerformanceHours) != 0 {
		t.Fatalf("peak hours = %v, want empty", p.PeakPerformanceHours)
	}
	if p.PreferredDifficulty != types.DifficultyEasy {
		t.Fatalf("difficulty = %q, want easy", p.PreferredDifficulty)
	}
	if len(p.WeakSubjects) != 0 || len(p.StrongSubjects) != 0 {
		t.Fatalf("subjects should be empty, got weak=%v strong=%v", p.WeakSubjects, p.StrongSubjects)
	}
}

func TestAnalyzePatternsPeakHours(t *testing.T) {
	sessions := []*types.StudySession{
		session(1, 9, 60),
		session(2, 9, 60),
		session(3, 9, 60),
		session(4, 20, 60),
		session(5, 20, 60),
		session(6, 14, 60),
		session(7, 7, 60),
		session(8, 7, 60),
	}

	p := AnalyzePatterns(sessions, nil)

	// 9 three times, then 20 and 7 twice each; 20 was seen first so the tie
	// resolves in its favor. 14 falls off the top three.
	want := []int{9, 20, 7}
	if !reflect.DeepEqual(p.PeakPerformanceHours, want) {
		t.Fatalf("peak hours = %v, want %v", p.PeakPerformanceHours, want)
	}
	wantTimes := []string{"09:00", "20:00", "07:00"}
	if !reflect.DeepEqual(p.OptimalStudyTimes, wantTimes) {
		t.Fatalf("optimal times = %v, want %v", p.OptimalStudyTimes, wantTimes)
	}
}

func TestAnalyzePatternsDurationAndConsistency(t *testing.T) {
	sessions := []*types.StudySession{
		session(1, 9, 60),
		session(2, 9, 30),
		session(3, 9, -1), // abandoned
		session(4, 9, -1), // abandoned
	}

	p := AnalyzePatterns(sessions, nil)

	// Abandoned sessions are excluded from the average but drag consistency.
	if p.AverageSessionDuration != 45 {
		t.Fatalf("avg duration = %d, want 45", p.AverageSessionDuration)
	}
	if p.ConsistencyScore != 0.5 {
		t.Fatalf("consistency = %v, want 0.5", p.ConsistencyScore)
	}
}

func TestAnalyzePatternsRetentionAndDifficulty(t *testing.T) {
	cases := []struct {
		name      string
		scores    []float64
		wantLevel string
	}{
		{"high retention prefers hard", []float64{90, 85, 95}, types.DifficultyHard},
		{"mid retention prefers medium", []float64{70, 65, 75}, types.DifficultyMedium},
		{"low retention prefers easy", []float64{40, 50, 45}, types.DifficultyEasy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := []*types.AssessmentResult{}
			for _, s := range tc.scores {
				results = append(results, result("Biology", s, 100))
			}
			p := AnalyzePatterns(nil, results)
			if p.PreferredDifficulty != tc.wantLevel {
				t.Fatalf("difficulty = %q, want %q (retention %v)", p.PreferredDifficulty, tc.wantLevel, p.RetentionRate)
			}
		})
	}
}

func TestAnalyzePatternsClassifiesSubjects(t *testing.T) {
	results := []*types.AssessmentResult{
		result("Mathematics", 50, 100),
		result("Mathematics", 60, 100),
		result("Physics", 80, 100),
		result("Physics", 90, 100),
		result("Chemistry", 95, 100), // one strong point is not enough
		result("History", 70, 100),   // middle band, neither weak nor strong
	}

	p := AnalyzePatterns(nil, results)

	if !reflect.DeepEqual(p.WeakSubjects, []string{"Mathematics"}) {
		t.Fatalf("weak = %v, want [Mathematics]", p.WeakSubjects)
	}
	if !reflect.DeepEqual(p.StrongSubjects, []string{"Physics"}) {
		t.Fatalf("strong = %v, want [Physics]", p.StrongSubjects)
	}
}

func TestAnalyzePatternsResultWindow(t *testing.T) {
	// 60 results: the newest 50 are failing scores, the older 10 perfect
	// scores must be ignored.
	results := []*types.AssessmentResult{}
	for i := 0; i < 50; i++ {
		results = append(results, result("Law", 40, 100))
	}
	for i := 0; i < 10; i++ {
		results = append(results, result("Law", 100, 100))
	}

	p := AnalyzePatterns(nil, results)

	if math.Abs(p.RetentionRate-0.4) > 1e-9 {
		t.Fatalf("retention = %v, want 0.4", p.RetentionRate)
	}
}

func TestAnalyzePatternsDeterministic(t *testing.T) {
	sessions := []*types.StudySession{
		session(1, 9, 60), session(2, 20, 45), session(3, 9, 30), session(4, 20, 50),
	}
	results := []*types.AssessmentResult{
		result("Mathematics", 50, 100),
		result("Physics", 85, 100),
		result("Physics", 90, 100),
	}

	first := AnalyzePatterns(sessions, results)
	for i := 0; i < 20; i++ {
		again := AnalyzePatterns(sessions, results)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}
