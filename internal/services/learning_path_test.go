package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okaforcj/examforge-backend/internal/types"
)

func newPathServiceForTest(n Narrator, ss *fakeStudySessionRepo, ar *fakeAssessmentResultRepo, er *fakeEnrollmentRepo, pr *fakePathRunRepo) *learningPathService {
	svc := NewLearningPathService(nil, testLogger(), n, ss, ar, er, pr, &fakeAICallLogRepo{}).(*learningPathService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestGeneratePathRequiresMatchingCourses(t *testing.T) {
	svc := newPathServiceForTest(
		&scriptedNarrator{},
		&fakeStudySessionRepo{},
		&fakeAssessmentResultRepo{},
		&fakeEnrollmentRepo{enrollments: []*types.Enrollment{enrollment("Math", "SAT", 10, 0)}},
		&fakePathRunRepo{},
	)

	_, err := svc.GeneratePersonalizedPath(context.Background(), uuid.New(), "GRE", nil, 2)
	if !errors.Is(err, ErrNoRelevantCourses) {
		t.Fatalf("err = %v, want ErrNoRelevantCourses", err)
	}
}

func TestGeneratePathFallbackPhases(t *testing.T) {
	// Mathematics averages below 65 and is the weak subject; Physics is fine.
	results := []*types.AssessmentResult{
		result("Mathematics", 50, 100),
		result("Mathematics", 55, 100),
		result("Physics", 72, 100),
	}
	runs := &fakePathRunRepo{}

	svc := newPathServiceForTest(
		&scriptedNarrator{err: fmt.Errorf("no narrator")},
		&fakeStudySessionRepo{},
		&fakeAssessmentResultRepo{results: results},
		&fakeEnrollmentRepo{enrollments: []*types.Enrollment{
			enrollment("Physics", "SAT", 6, 0),
			enrollment("Mathematics", "SAT", 6, 0),
		}},
		runs,
	)

	path, err := svc.GeneratePersonalizedPath(context.Background(), uuid.New(), "SAT", nil, 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if path.Source != types.GenerationSourceFallback {
		t.Fatalf("source = %q, want fallback", path.Source)
	}
	if len(path.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(path.Phases))
	}
	if path.Phases[0].Name != "Foundation Building" || path.Phases[0].Weeks != 2 {
		t.Fatalf("phase 1 = %+v", path.Phases[0])
	}
	if len(path.Phases[0].Topics) != 1 || path.Phases[0].Topics[0] != "Mathematics" {
		t.Fatalf("foundation topics = %v, want [Mathematics]", path.Phases[0].Topics)
	}
	if path.Phases[1].Name != "Comprehensive Review" || path.Phases[1].Weeks < 1 {
		t.Fatalf("phase 2 = %+v", path.Phases[1])
	}
	// 12 units: ceil(12/5)=3 weeks total, minus the 2 foundation weeks.
	if path.Phases[1].Weeks != 1 {
		t.Fatalf("review weeks = %d, want 1", path.Phases[1].Weeks)
	}
	if path.TotalDurationWeeks != 3 {
		t.Fatalf("total weeks = %d, want 3", path.TotalDurationWeeks)
	}

	// Weak-subject units lead the ordered unit list.
	if len(path.Units) != 12 {
		t.Fatalf("got %d units, want 12", len(path.Units))
	}
	for i, u := range path.Units {
		if i < 6 && u.Subject != "Mathematics" {
			t.Fatalf("unit %d = %q, weak units must come first", i, u.Subject)
		}
		if i >= 6 && u.Subject != "Physics" {
			t.Fatalf("unit %d = %q, want Physics", i, u.Subject)
		}
	}

	if len(runs.runs) != 1 {
		t.Fatalf("persisted %d path runs, want 1", len(runs.runs))
	}
	if runs.runs[0].Source != types.GenerationSourceFallback {
		t.Fatalf("run source = %q", runs.runs[0].Source)
	}
}

func TestGeneratePathCapsUnits(t *testing.T) {
	svc := newPathServiceForTest(
		&scriptedNarrator{err: fmt.Errorf("no narrator")},
		&fakeStudySessionRepo{},
		&fakeAssessmentResultRepo{},
		&fakeEnrollmentRepo{enrollments: []*types.Enrollment{enrollment("Law", "Bar", 35, 5)}},
		&fakePathRunRepo{},
	)

	path, err := svc.GeneratePersonalizedPath(context.Background(), uuid.New(), "Bar", nil, 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(path.Units) != 20 {
		t.Fatalf("got %d units, want cap of 20", len(path.Units))
	}
	if path.Units[0].UnitIndex != 5 {
		t.Fatalf("first unit index = %d, want 5 (after completed units)", path.Units[0].UnitIndex)
	}
}

func TestGeneratePathUsesNarratorPhases(t *testing.T) {
	reply := `{"phases":[{"name":"Sprint","weeks":1,"topics":["Algebra"]},{"name":"Polish","weeks":2,"topics":["Geometry"]}],"totalDurationWeeks":0}`
	svc := newPathServiceForTest(
		&scriptedNarrator{reply: reply},
		&fakeStudySessionRepo{},
		&fakeAssessmentResultRepo{},
		&fakeEnrollmentRepo{enrollments: []*types.Enrollment{enrollment("Math", "SAT", 4, 0)}},
		&fakePathRunRepo{},
	)

	path, err := svc.GeneratePersonalizedPath(context.Background(), uuid.New(), "SAT", nil, 2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if path.Source != types.GenerationSourceAI {
		t.Fatalf("source = %q, want ai", path.Source)
	}
	if len(path.Phases) != 2 || path.Phases[0].Name != "Sprint" {
		t.Fatalf("phases = %+v", path.Phases)
	}
	// Missing total falls back to the sum of phase weeks.
	if path.TotalDurationWeeks != 3 {
		t.Fatalf("total weeks = %d, want 3", path.TotalDurationWeeks)
	}
}

func TestPaceDailyHours(t *testing.T) {
	now := fixedNow
	in10days := now.AddDate(0, 0, 10)

	// 10 units at 30 minutes each is 5 hours of work over 10 days: the
	// requested 4h/day budget is clamped down to the 0.5h/day actually needed.
	got := paceDailyHours(4, 10, 30, &in10days, now)
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("paced = %v, want 0.5", got)
	}

	// A tight deadline keeps the requested budget even when it is not enough.
	tomorrow := now.AddDate(0, 0, 1)
	got = paceDailyHours(1, 40, 60, &tomorrow, now)
	if got != 1 {
		t.Fatalf("paced = %v, want requested 1", got)
	}

	if got := paceDailyHours(2, 10, 30, nil, now); got != 2 {
		t.Fatalf("nil target: paced = %v, want 2", got)
	}
	past := now.AddDate(0, 0, -1)
	if got := paceDailyHours(2, 10, 30, &past, now); got != 2 {
		t.Fatalf("past target: paced = %v, want 2", got)
	}
}
