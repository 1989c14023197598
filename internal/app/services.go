package app

import (
	"gorm.io/gorm"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/services"
)

type Services struct {
	Narrator       services.Narrator
	Schedule       services.ScheduleService
	LearningPath   services.LearningPathService
	Recommendation services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	narrator, err := services.NewOpenAINarrator(log)
	if err != nil {
		// The engine stays useful without a narrator: every generation path
		// has a deterministic fallback.
		log.Warn("narrator unavailable, running on fallbacks only", "error", err)
		narrator = services.NoopNarrator()
	}

	schedule := services.NewScheduleService(
		db,
		log,
		narrator,
		reposet.Availability,
		reposet.StudySession,
		reposet.AssessmentResult,
		reposet.Enrollment,
		reposet.ScheduledSession,
		reposet.AICallLog,
	)
	learningPath := services.NewLearningPathService(
		db,
		log,
		narrator,
		reposet.StudySession,
		reposet.AssessmentResult,
		reposet.Enrollment,
		reposet.PathRun,
		reposet.AICallLog,
	)
	recommendation := services.NewRecommendationService(
		db,
		log,
		reposet.ScheduledSession,
		reposet.StudySession,
		reposet.AssessmentResult,
	)

	return Services{
		Narrator:       narrator,
		Schedule:       schedule,
		LearningPath:   learningPath,
		Recommendation: recommendation,
	}, nil
}
