package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okaforcj/examforge-backend/internal/types"
)

func newRecommendationServiceForTest(sr *fakeScheduledSessionRepo, ss *fakeStudySessionRepo, ar *fakeAssessmentResultRepo) *recommendationService {
	svc := NewRecommendationService(nil, testLogger(), sr, ss, ar).(*recommendationService)
	svc.now = func() time.Time { return fixedNow }
	svc.intn = func(n int) int { return 3 }
	return svc
}

func hasRecommendation(recs []string, fragment string) bool {
	for _, r := range recs {
		if strings.Contains(r, fragment) {
			return true
		}
	}
	return false
}

func TestDailyRecommendationsLowScores(t *testing.T) {
	svc := newRecommendationServiceForTest(
		&fakeScheduledSessionRepo{},
		&fakeStudySessionRepo{},
		&fakeAssessmentResultRepo{results: []*types.AssessmentResult{
			result("Math", 40, 100),
			result("Math", 50, 100),
		}},
	)

	plan, err := svc.DailyRecommendations(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if !hasRecommendation(plan.Recommendations, "fundamentals") {
		t.Fatalf("want fundamentals advice, got %v", plan.Recommendations)
	}
	if hasRecommendation(plan.Recommendations, "harder content") {
		t.Fatalf("low scores must not trigger harder-content advice: %v", plan.Recommendations)
	}
	if plan.MotivationalMessage != motivationalMessages[3] {
		t.Fatalf("message = %q, want pinned index 3", plan.MotivationalMessage)
	}
}

func TestDailyRecommendationsHighScores(t *testing.T) {
	svc := newRecommendationServiceForTest(
		&fakeScheduledSessionRepo{},
		&fakeStudySessionRepo{},
		&fakeAssessmentResultRepo{results: []*types.AssessmentResult{
			result("Math", 92, 100),
			result("Math", 88, 100),
		}},
	)

	plan, err := svc.DailyRecommendations(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if !hasRecommendation(plan.Recommendations, "harder content") {
		t.Fatalf("want harder-content advice, got %v", plan.Recommendations)
	}
}

func TestDailyRecommendationsConsistency(t *testing.T) {
	// Mostly abandoned sessions drag consistency under the cutoff.
	history := []*types.StudySession{
		session(1, 6, 60),
		session(2, 6, -1),
		session(3, 6, -1),
		session(4, 6, -1),
	}
	svc := newRecommendationServiceForTest(
		&fakeScheduledSessionRepo{},
		&fakeStudySessionRepo{sessions: history},
		&fakeAssessmentResultRepo{},
	)

	plan, err := svc.DailyRecommendations(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if !hasRecommendation(plan.Recommendations, "finish the sessions") {
		t.Fatalf("want consistency advice, got %v", plan.Recommendations)
	}
}

func TestDailyRecommendationsPeakHour(t *testing.T) {
	// All history starts at the pinned current hour, making it a peak hour.
	history := []*types.StudySession{
		session(1, fixedNow.Hour(), 45),
		session(2, fixedNow.Hour(), 45),
		session(3, fixedNow.Hour(), 45),
	}
	today := []*types.ScheduledSession{
		{ID: uuid.New(), ScheduledAt: fixedNow.Add(2 * time.Hour), DurationMinutes: 45},
	}
	svc := newRecommendationServiceForTest(
		&fakeScheduledSessionRepo{between: today},
		&fakeStudySessionRepo{sessions: history},
		&fakeAssessmentResultRepo{},
	)

	plan, err := svc.DailyRecommendations(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if !hasRecommendation(plan.Recommendations, "peak performance") {
		t.Fatalf("want peak-hour advice, got %v", plan.Recommendations)
	}
	if len(plan.TodaysSessions) != 1 {
		t.Fatalf("todays sessions = %d, want 1", len(plan.TodaysSessions))
	}
}
