package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	pkgerrors "github.com/okaforcj/examforge-backend/internal/pkg/errors"
	"github.com/okaforcj/examforge-backend/internal/repos"
	"github.com/okaforcj/examforge-backend/internal/types"
)

// ErrNoAvailability is the hard precondition failure of schedule generation:
// the user has not configured any availability slots. It is surfaced to the
// caller verbatim so the UI can prompt configuration.
var ErrNoAvailability = errors.New("no availability slots configured")

const (
	scheduleHorizonDays  = 14
	historySessionWindow = 100
	historyResultWindow  = 50
	promptResultWindow   = 10
	fallbackPriority     = 5
)

const fallbackRecommendation = "Automatically scheduled from your availability (offline planner)."

type ScheduleService interface {
	SetAvailability(ctx context.Context, userID uuid.UUID, slots []*types.AvailabilitySlot) ([]*types.AvailabilitySlot, error)
	GetAvailability(ctx context.Context, userID uuid.UUID) ([]*types.AvailabilitySlot, error)
	// GenerateOptimalSchedule builds and persists a two-week session batch.
	// Each call produces an independent batch; regeneration is caller-driven
	// and no dedup is attempted across calls.
	GenerateOptimalSchedule(ctx context.Context, userID uuid.UUID, targetExamDate *time.Time) ([]*types.ScheduledSession, error)
	UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status string, actualDurationMinutes *int) error
}

type scheduleService struct {
	db               *gorm.DB
	log              *logger.Logger
	narrator         Narrator
	availabilityRepo repos.AvailabilityRepo
	sessionRepo      repos.StudySessionRepo
	resultRepo       repos.AssessmentResultRepo
	enrollmentRepo   repos.EnrollmentRepo
	scheduledRepo    repos.ScheduledSessionRepo
	aiLogRepo        repos.AICallLogRepo

	now func() time.Time
}

func NewScheduleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	narrator Narrator,
	availabilityRepo repos.AvailabilityRepo,
	sessionRepo repos.StudySessionRepo,
	resultRepo repos.AssessmentResultRepo,
	enrollmentRepo repos.EnrollmentRepo,
	scheduledRepo repos.ScheduledSessionRepo,
	aiLogRepo repos.AICallLogRepo,
) ScheduleService {
	serviceLog := baseLog.With("service", "ScheduleService")
	return &scheduleService{
		db:               db,
		log:              serviceLog,
		narrator:         narrator,
		availabilityRepo: availabilityRepo,
		sessionRepo:      sessionRepo,
		resultRepo:       resultRepo,
		enrollmentRepo:   enrollmentRepo,
		scheduledRepo:    scheduledRepo,
		aiLogRepo:        aiLogRepo,
		now:              time.Now,
	}
}

func (s *scheduleService) SetAvailability(ctx context.Context, userID uuid.UUID, slots []*types.AvailabilitySlot) ([]*types.AvailabilitySlot, error) {
	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: day_of_week %d out of range", pkgerrors.ErrInvalidArgument, slot.DayOfWeek)
		}
		start, err := time.Parse("15:04", slot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: start_time %q", pkgerrors.ErrInvalidArgument, slot.StartTime)
		}
		end, err := time.Parse("15:04", slot.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: end_time %q", pkgerrors.ErrInvalidArgument, slot.EndTime)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("%w: start_time %s must be before end_time %s", pkgerrors.ErrInvalidArgument, slot.StartTime, slot.EndTime)
		}
		if slot.ID == uuid.Nil {
			slot.ID = uuid.New()
		}
		slot.UserID = userID
	}
	return s.availabilityRepo.ReplaceForUser(ctx, userID, slots)
}

func (s *scheduleService) GetAvailability(ctx context.Context, userID uuid.UUID) ([]*types.AvailabilitySlot, error) {
	return s.availabilityRepo.GetByUser(ctx, nil, userID)
}

func (s *scheduleService) GenerateOptimalSchedule(ctx context.Context, userID uuid.UUID, targetExamDate *time.Time) ([]*types.ScheduledSession, error) {
	slots, err := s.availabilityRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	if len(slots) == 0 {
		return nil, ErrNoAvailability
	}

	history, err := s.sessionRepo.ListRecentByUser(ctx, nil, userID, historySessionWindow)
	if err != nil {
		return nil, fmt.Errorf("load study sessions: %w", err)
	}
	results, err := s.resultRepo.ListRecentByUser(ctx, nil, userID, historyResultWindow)
	if err != nil {
		return nil, fmt.Errorf("load assessment results: %w", err)
	}
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}

	profile := AnalyzePatterns(history, results)

	recent := results
	if len(recent) > promptResultWindow {
		recent = recent[:promptResultWindow]
	}

	sessions, source, err := generateWithFallback(s.log, "schedule",
		func() ([]*types.ScheduledSession, error) {
			return s.aiSchedule(ctx, userID, profile, slots, enrollments, recent, targetExamDate)
		},
		func() ([]*types.ScheduledSession, error) {
			return s.fallbackSchedule(userID, profile, slots, enrollments), nil
		},
	)
	if err != nil {
		return nil, err
	}
	s.log.Info("schedule generated", "user_id", userID, "source", source, "sessions", len(sessions))

	if _, err := s.scheduledRepo.CreateBatch(ctx, nil, sessions); err != nil {
		return nil, fmt.Errorf("persist schedule: %w", err)
	}
	return sessions, nil
}

func (s *scheduleService) UpdateSessionStatus(ctx context.Context, sessionID uuid.UUID, status string, actualDurationMinutes *int) error {
	if !types.ValidSessionStatus(status) {
		return fmt.Errorf("%w: status %q", pkgerrors.ErrInvalidArgument, status)
	}
	return s.scheduledRepo.UpdateStatus(ctx, nil, sessionID, status, actualDurationMinutes)
}

// aiScheduleItem is the element shape requested from the narrator.
type aiScheduleItem struct {
	CourseID         string `json:"courseId"`
	LessonID         string `json:"lessonId"`
	ScheduledAt      string `json:"scheduledAt"`
	Duration         int    `json:"duration"`
	Type             string `json:"type"`
	Priority         int    `json:"priority"`
	AIRecommendation string `json:"aiRecommendation"`
}

func (s *scheduleService) aiSchedule(ctx context.Context, userID uuid.UUID, profile *types.LearningProfile, slots []*types.AvailabilitySlot, enrollments []*types.Enrollment, recent []*types.AssessmentResult, targetExamDate *time.Time) ([]*types.ScheduledSession, error) {
	prompt := buildSchedulePrompt(profile, slots, enrollments, recent, targetExamDate)

	started := s.now()
	raw, err := s.narrator.Generate(ctx, scheduleSystemPrompt, prompt)
	s.recordAICall(ctx, userID, "schedule", prompt, raw, err, time.Since(started))
	if err != nil {
		return nil, fmt.Errorf("narrator: %w", err)
	}

	items, err := parseScheduleItems(raw)
	if err != nil {
		return nil, err
	}
	return mapScheduleItems(userID, items)
}

// parseScheduleItems accepts only a JSON array; anything else is a failure
// that sends the caller down the deterministic path.
func parseScheduleItems(raw string) ([]aiScheduleItem, error) {
	cleaned := stripCodeFences(raw)
	var items []aiScheduleItem
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse narrator schedule: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("narrator schedule is empty")
	}
	return items, nil
}

func mapScheduleItems(userID uuid.UUID, items []aiScheduleItem) ([]*types.ScheduledSession, error) {
	sessions := make([]*types.ScheduledSession, 0, len(items))
	for i, item := range items {
		courseID, err := uuid.Parse(item.CourseID)
		if err != nil {
			return nil, fmt.Errorf("item %d: bad courseId %q: %w", i, item.CourseID, err)
		}
		scheduledAt, err := time.Parse(time.RFC3339, item.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("item %d: bad scheduledAt %q: %w", i, item.ScheduledAt, err)
		}
		if item.Duration <= 0 {
			return nil, fmt.Errorf("item %d: bad duration %d", i, item.Duration)
		}

		var lessonID *uuid.UUID
		if item.LessonID != "" {
			id, err := uuid.Parse(item.LessonID)
			if err != nil {
				return nil, fmt.Errorf("item %d: bad lessonId %q: %w", i, item.LessonID, err)
			}
			lessonID = &id
		}

		sessionType := item.Type
		if !types.ValidSessionType(sessionType) {
			sessionType = types.SessionTypeLesson
		}
		priority := item.Priority
		if priority < 1 {
			priority = 1
		}
		if priority > 10 {
			priority = 10
		}

		sessions = append(sessions, &types.ScheduledSession{
			ID:              uuid.New(),
			UserID:          userID,
			CourseID:        courseID,
			LessonID:        lessonID,
			ScheduledAt:     scheduledAt,
			DurationMinutes: item.Duration,
			Type:            sessionType,
			Priority:        priority,
			Status:          types.SessionStatusScheduled,
			Recommendation:  item.AIRecommendation,
		})
	}
	return sessions, nil
}

// fallbackSchedule is the deterministic slot packer: for each of the next 14
// calendar days it fills every availability window that is long enough with
// one lesson for the first still-incomplete course. It cannot fail; when no
// course or window qualifies it returns an empty batch.
func (s *scheduleService) fallbackSchedule(userID uuid.UUID, profile *types.LearningProfile, slots []*types.AvailabilitySlot, enrollments []*types.Enrollment) []*types.ScheduledSession {
	var target *types.Enrollment
	for _, e := range enrollments {
		if e.CompletionRate() < 1.0 {
			target = e
			break
		}
	}
	sessions := []*types.ScheduledSession{}
	if target == nil {
		return sessions
	}

	today := s.now()
	for day := 1; day <= scheduleHorizonDays; day++ {
		date := today.AddDate(0, 0, day)
		weekday := int(date.Weekday())
		for _, slot := range slots {
			if slot.DayOfWeek != weekday {
				continue
			}
			available := slot.Minutes()
			if available < profile.AverageSessionDuration {
				continue
			}
			duration := profile.AverageSessionDuration
			if available < duration {
				duration = available
			}

			start, _ := time.Parse("15:04", slot.StartTime)
			scheduledAt := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, date.Location())

			sessions = append(sessions, &types.ScheduledSession{
				ID:              uuid.New(),
				UserID:          userID,
				CourseID:        target.CourseID,
				ScheduledAt:     scheduledAt,
				DurationMinutes: duration,
				Type:            types.SessionTypeLesson,
				Priority:        fallbackPriority,
				Status:          types.SessionStatusScheduled,
				Recommendation:  fallbackRecommendation,
			})
		}
	}
	return sessions
}

// recordAICall persists the narrator round-trip for diagnostics; failures
// here are logged, never propagated.
func (s *scheduleService) recordAICall(ctx context.Context, userID uuid.UUID, kind, prompt, response string, callErr error, took time.Duration) {
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

func mustJSONBytes(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("{}")
	}
	return b
}
