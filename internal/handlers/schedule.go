package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/okaforcj/examforge-backend/internal/logger"
	"github.com/okaforcj/examforge-backend/internal/services"
	"github.com/okaforcj/examforge-backend/internal/types"
)

type ScheduleHandler struct {
	log *logger.Logger
	svc services.ScheduleService
}

func NewScheduleHandler(log *logger.Logger, svc services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		log: log.With("handler", "ScheduleHandler"),
		svc: svc,
	}
}

type availabilitySlotInput struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type setAvailabilityRequest struct {
	Slots []availabilitySlotInput `json:"slots" binding:"required"`
}

// PUT /api/users/:userID/availability
// Replaces the user's whole weekly availability in one shot.
func (h *ScheduleHandler) SetAvailability(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	slots := make([]*types.AvailabilitySlot, 0, len(req.Slots))
	for _, in := range req.Slots {
		slots = append(slots, &types.AvailabilitySlot{
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	saved, err := h.svc.SetAvailability(c.Request.Context(), userID, slots)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"availability": saved})
}

// GET /api/users/:userID/availability
func (h *ScheduleHandler) GetAvailability(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	slots, err := h.svc.GetAvailability(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"availability": slots})
}

type generateScheduleRequest struct {
	TargetExamDate *time.Time `json:"target_exam_date"`
}

// POST /api/users/:userID/schedule/generate
// Always 200 on success even when the deterministic fallback produced the
// batch; fallback usage is visible in each session's recommendation text.
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	var req generateScheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}

	sessions, err := h.svc.GenerateOptimalSchedule(c.Request.Context(), userID, req.TargetExamDate)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

type updateSessionStatusRequest struct {
	Status                string `json:"status" binding:"required"`
	ActualDurationMinutes *int   `json:"actual_duration_minutes"`
}

// PATCH /api/sessions/:sessionID/status
func (h *ScheduleHandler) UpdateSessionStatus(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("sessionID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req updateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if err := h.svc.UpdateSessionStatus(c.Request.Context(), sessionID, req.Status, req.ActualDurationMinutes); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}
