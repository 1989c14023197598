package app

import (
	"github.com/gin-gonic/gin"

	"github.com/okaforcj/examforge-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:           cfg.ServiceName,
		ScheduleHandler:       handlers.Schedule,
		LearningPathHandler:   handlers.LearningPath,
		RecommendationHandler: handlers.Recommendation,
	})
}
