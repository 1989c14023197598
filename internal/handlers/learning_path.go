package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/services"
)

type LearningPathHandler struct {
	log *logger.Logger
	svc services.LearningPathService
}

func NewLearningPathHandler(log *logger.Logger, svc services.LearningPathService) *LearningPathHandler {
	return &LearningPathHandler{
		log: log.With("handler", "LearningPathHandler"),
		svc: svc,
	}
}

type generatePathRequest struct {
	ExamType             string     `json:"exam_type"`
	TargetDate           *time.Time `json:"target_date"`
	AvailableHoursPerDay float64    `json:"available_hours_per_day"`
}

// POST /api/users/:userID/learning-path
func (h *LearningPathHandler) GeneratePath(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	var req generatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	path, err := h.svc.GeneratePersonalizedPath(c.Request.Context(), userID, req.ExamType, req.TargetDate, req.AvailableHoursPerDay)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"learning_path": path})
}
