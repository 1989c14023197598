package app

import (
	"github.com/okaforcj/examforge-backend/internal/handlers"
	"github.com/okaforcj/examforge-backend/internal/logger"
)

type Handlers struct {
	Schedule       *handlers.ScheduleHandler
	LearningPath   *handlers.LearningPathHandler
	Recommendation *handlers.RecommendationHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Schedule:       handlers.NewScheduleHandler(log, services.Schedule),
		LearningPath:   handlers.NewLearningPathHandler(log, services.LearningPath),
		Recommendation: handlers.NewRecommendationHandler(log, services.Recommendation),
	}
}
