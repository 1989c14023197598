package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/okaforcj/examforge-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName           string
	ScheduleHandler       *handlers.ScheduleHandler
	LearningPathHandler   *handlers.LearningPathHandler
	RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware(cfg.ServiceName))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		users := api.Group("/users/:userID")
		{
			users.PUT("/availability", cfg.ScheduleHandler.SetAvailability)
			users.GET("/availability", cfg.ScheduleHandler.GetAvailability)
			users.POST("/schedule/generate", cfg.ScheduleHandler.GenerateSchedule)
			users.POST("/learning-path", cfg.LearningPathHandler.GeneratePath)
			users.GET("/recommendations/daily", cfg.RecommendationHandler.Daily)
		}
		api.PATCH("/sessions/:sessionID/status", cfg.ScheduleHandler.UpdateSessionStatus)
	}

	return router
}
