package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/services"
)

type RecommendationHandler struct {
	log *logger.Logger
	svc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, svc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log: log.With("handler", "RecommendationHandler"),
		svc: svc,
	}
}

// GET /api/users/:userID/recommendations/daily
func (h *RecommendationHandler) Daily(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	plan, err := h.svc.DailyRecommendations(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plan)
}
