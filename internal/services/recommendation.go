package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/repos"
	"github.com/okaforcj/examforge-backend/internal/types"
)

const recentScoreWindow = 5

const (
	lowScoreCutoff  = 60.0
	highScoreCutoff = 80.0
	lowConsistency  = 0.7
)

var motivationalMessages = []string{
	"Every session counts. Keep showing up.",
	"Small steps today, big results on exam day.",
	"You are closer than you think. Stay on it.",
	"Consistency beats intensity. One more session.",
	"Your future self will thank you for today.",
}

type RecommendationService interface {
	// DailyRecommendations composes short-lived guidance from today's
	// schedule, the fresh profile, and the latest scores. No AI call, no
	// persistence; everything is recomputed per request.
	DailyRecommendations(ctx context.Context, userID uuid.UUID) (*types.DailyPlan, error)
}

type recommendationService struct {
	db            *gorm.DB
	log           *logger.Logger
	scheduledRepo repos.ScheduledSessionRepo
	sessionRepo   repos.StudySessionRepo
	resultRepo    repos.AssessmentResultRepo

	// intn and now are injectable so tests can pin the message choice and
	// the peak-hour check.
	intn func(n int) int
	now  func() time.Time
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	scheduledRepo repos.ScheduledSessionRepo,
	sessionRepo repos.StudySessionRepo,
	resultRepo repos.AssessmentResultRepo,
) RecommendationService {
	serviceLog := baseLog.With("service", "RecommendationService")
	return &recommendationService{
		db:            db,
		log:           serviceLog,
		scheduledRepo: scheduledRepo,
		sessionRepo:   sessionRepo,
		resultRepo:    resultRepo,
		intn:          rand.Intn,
		now:           time.Now,
	}
}

func (s *recommendationService) DailyRecommendations(ctx context.Context, userID uuid.UUID) (*types.DailyPlan, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	todays, err := s.scheduledRepo.ListForUserBetween(ctx, nil, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("load today's sessions: %w", err)
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

	recent := results
	if len(recent) > recentScoreWindow {
		recent = recent[:recentScoreWindow]
	}

	recommendations := []string{}
	if len(recent) > 0 {
		sum := 0.0
		for _, r := range recent {
			sum += r.Ratio() * 100
		}
		mean := sum / float64(len(recent))
		if mean < lowScoreCutoff {
			recommendations = append(recommendations, "Your recent scores suggest revisiting the fundamentals before moving on.")
		}
		if mean > highScoreCutoff {
			recommendations = append(recommendations, "You are scoring well. Tackle harder content to keep progressing.")
		}
	}
	if profile.ConsistencyScore < lowConsistency {
		recommendations = append(recommendations, "Try to finish the sessions you start. Shorter, completed sessions beat long abandoned ones.")
	}
	for _, h := range profile.PeakPerformanceHours {
		if h == now.Hour() {
			recommendations = append(recommendations, "This is one of your peak performance hours. A session now will count double.")
			break
		}
	}

	return &types.DailyPlan{
		TodaysSessions:      todays,
		Recommendations:     recommendations,
		MotivationalMessage: motivationalMessages[s.intn(len(motivationalMessages))],
	}, nil
}
