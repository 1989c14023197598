package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/repos"
	"github.com/okaforcj/examforge-backend/internal/types"
)

// ErrNoRelevantCourses is the precondition failure of path generation: after
// filtering by exam type the user has nothing to study. Surfaced verbatim.
var ErrNoRelevantCourses = errors.New("no enrolled courses match the requested exam type")

const (
	maxPathUnits       = 20
	foundationWeeks    = 2
	unitsPerReviewWeek = 5
)

type LearningPathService interface {
	// GeneratePersonalizedPath orders incomplete curriculum units by weakness
	// and paces them against the target date. Pacing output is advisory: an
	// insufficient daily budget is reported as data, never as an error.
	GeneratePersonalizedPath(ctx context.Context, userID uuid.UUID, examType string, targetDate *time.Time, availableHoursPerDay float64) (*types.LearningPath, error)
}

type learningPathService struct {
	db             *gorm.DB
	log            *logger.Logger
	narrator       Narrator
	sessionRepo    repos.StudySessionRepo
	resultRepo     repos.AssessmentResultRepo
	enrollmentRepo repos.EnrollmentRepo
	pathRunRepo    repos.PathRunRepo
	aiLogRepo      repos.AICallLogRepo

	now func() time.Time
}

func NewLearningPathService(
	db *gorm.DB,
	baseLog *logger.Logger,
	narrator Narrator,
	sessionRepo repos.StudySessionRepo,
	resultRepo repos.AssessmentResultRepo,
	enrollmentRepo repos.EnrollmentRepo,
	pathRunRepo repos.PathRunRepo,
	aiLogRepo repos.AICallLogRepo,
) LearningPathService {
	serviceLog := baseLog.With("service", "LearningPathService")
	return &learningPathService{
		db:             db,
		log:            serviceLog,
		narrator:       narrator,
		sessionRepo:    sessionRepo,
		resultRepo:     resultRepo,
		enrollmentRepo: enrollmentRepo,
		pathRunRepo:    pathRunRepo,
		aiLogRepo:      aiLogRepo,
		now:            time.Now,
	}
}

func (s *learningPathService) GeneratePersonalizedPath(ctx context.Context, userID uuid.UUID, examType string, targetDate *time.Time, availableHoursPerDay float64) (*types.LearningPath, error) {
	var (
		enrollments []*types.Enrollment
		err         error
	)
	if examType != "" {
		enrollments, err = s.enrollmentRepo.ListByUserAndExamType(ctx, nil, userID, examType)
	} else {
		enrollments, err = s.enrollmentRepo.ListByUser(ctx, nil, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	if len(enrollments) == 0 {
		return nil, ErrNoRelevantCourses
	}

	history, err := s.sessionRepo.ListRecentByUser(ctx, nil, userID, historySessionWindow)
	if err != nil {
		return nil, fmt.Errorf("load study sessions: %w", err)
	}
	results, err := s.resultRepo.ListRecentByUser(ctx, nil, userID, historyResultWindow)
	if err != nil {
		return nil, fmt.Errorf("load assessment results: %w", err)
	}
	profile := AnalyzePatterns(history, results)

	units := sortUnitsByWeakness(incompleteUnits(enrollments, profile))

	path, source, err := generateWithFallback(s.log, "learning_path",
		func() (*types.LearningPath, error) {
			return s.aiPath(ctx, userID, profile, units, availableHoursPerDay, targetDate)
		},
		func() (*types.LearningPath, error) {
			return fallbackPath(units), nil
		},
	)
	if err != nil {
		return nil, err
	}
	path.Source = source
	path.Units = capUnits(units, maxPathUnits)
	path.DailyHours = paceDailyHours(availableHoursPerDay, len(units), profile.AverageSessionDuration, targetDate, s.now())

	s.recordPathRun(ctx, userID, examType, path)
	return path, nil
}

// incompleteUnits expands each enrollment into one PathUnit per unit not yet
// completed, tagging units from weak subjects.
func incompleteUnits(enrollments []*types.Enrollment, profile *types.LearningProfile) []types.PathUnit {
	units := []types.PathUnit{}
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		for idx := e.CompletedUnits; idx < e.Course.TotalUnits; idx++ {
			units = append(units, types.PathUnit{
				CourseID:      e.CourseID,
				CourseTitle:   e.Course.Title,
				Subject:       e.Course.Subject,
				UnitIndex:     idx,
				IsWeakSubject: profile.IsWeakSubject(e.Course.Subject),
			})
		}
	}
	return units
}

// sortUnitsByWeakness is a stable partition: weak-subject units precede all
// others, and relative order inside each side is preserved. No further
// ordering is guaranteed.
func sortUnitsByWeakness(units []types.PathUnit) []types.PathUnit {
	sorted := make([]types.PathUnit, 0, len(units))
	for _, u := range units {
		if u.IsWeakSubject {
			sorted = append(sorted, u)
		}
	}
	for _, u := range units {
		if !u.IsWeakSubject {
			sorted = append(sorted, u)
		}
	}
	return sorted
}

func capUnits(units []types.PathUnit, limit int) []types.PathUnit {
	if len(units) > limit {
		return units[:limit]
	}
	return units
}

type aiPathResponse struct {
	Phases             []types.PathPhase `json:"phases"`
	TotalDurationWeeks int               `json:"totalDurationWeeks"`
}

func (s *learningPathService) aiPath(ctx context.Context, userID uuid.UUID, profile *types.LearningProfile, units []types.PathUnit, hoursPerDay float64, targetDate *time.Time) (*types.LearningPath, error) {
	prompt := buildPathPrompt(profile, capUnits(units, maxPathUnits), hoursPerDay, targetDate)

	started := s.now()
	raw, err := s.narrator.Generate(ctx, pathSystemPrompt, prompt)
	s.recordAICall(ctx, userID, "learning_path", prompt, raw, err, time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("narrator: %w", err)
	}

	var resp aiPathResponse
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &resp); err != nil {
		return nil, fmt.Errorf("parse narrator path: %w", err)
	}
	if len(resp.Phases) == 0 {
		return nil, fmt.Errorf("narrator path has no phases")
	}
	total := resp.TotalDurationWeeks
	if total <= 0 {
		for _, p := range resp.Phases {
			total += p.Weeks
		}
	}
	return &types.LearningPath{
		Phases:             resp.Phases,
		TotalDurationWeeks: total,
	}, nil
}

// fallbackPath builds the deterministic two-phase plan: a fixed foundation
// block over the weak subjects, then a review block sized by unit count.
func fallbackPath(units []types.PathUnit) *types.LearningPath {
	weak := []string{}
	rest := []string{}
	seen := map[string]bool{}
	for _, u := range units {
		if seen[u.Subject] {
			continue
		}
		seen[u.Subject] = true
		if u.IsWeakSubject {
			weak = append(weak, u.Subject)
		} else {
			rest = append(rest, u.Subject)
		}
	}

	reviewWeeks := int(math.Ceil(float64(len(units))/float64(unitsPerReviewWeek))) - foundationWeeks
	if reviewWeeks < 1 {
		reviewWeeks = 1
	}

	phases := []types.PathPhase{
		{Name: "Foundation Building", Weeks: foundationWeeks, Topics: weak},
		{Name: "Comprehensive Review", Weeks: reviewWeeks, Topics: rest},
	}
	return &types.LearningPath{
		Phases:             phases,
		TotalDurationWeeks: foundationWeeks + reviewWeeks,
	}
}

// paceDailyHours clamps the requested budget to what the remaining material
// actually needs before the target date. Estimated effort per unit is the
// learner's average session length.
func paceDailyHours(requested float64, unitCount, avgSessionMinutes int, targetDate *time.Time, now time.Time) float64 {
	if requested < 0 {
		requested = 0
	}
	if targetDate == nil || !targetDate.After(now) || unitCount == 0 {
		return requested
	}
	days := targetDate.Sub(now).Hours() / 24
	if days < 1 {
		days = 1
	}
	totalHours := float64(unitCount*avgSessionMinutes) / 60
	needed := totalHours / days
	if needed < requested {
		return needed
	}
	return requested
}

func (s *learningPathService) recordPathRun(ctx context.Context, userID uuid.UUID, examType string, path *types.LearningPath) {
	if s.pathRunRepo == nil {
		return
	}
	run := &types.PathRun{
		ID:                 uuid.New(),
		UserID:             userID,
		ExamType:           examType,
		Source:             path.Source,
		Phases:             mustJSONBytes(path.Phases),
		TotalDurationWeeks: path.TotalDurationWeeks,
		DailyHours:         path.DailyHours,
	}
	if _, err := s.pathRunRepo.Create(ctx, nil, []*types.PathRun{run}); err != nil {
		s.log.Warn("could not persist path run", "error", err)
	}
}

// recordAICall mirrors the schedule service's diagnostics write.
func (s *learningPathService) recordAICall(ctx context.Context, userID uuid.UUID, kind, prompt, response string, callErr error, took time.Duration) {
	if s.aiLogRepo == nil {
		return
	}
	entry := &types.AICallLog{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       kind,
		Prompt:     prompt,
		Success:    callErr == nil,
		DurationMS: took.Milliseconds(),
	}
	if callErr != nil {
		entry.ErrorText = callErr.Error()
	}
	if response != "" {
		entry.Response = mustJSONBytes(map[string]string{"content": response})
	}
	if _, err := s.aiLogRepo.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
		s.log.Warn("could not persist AI call log", "error", err)
	}
}
