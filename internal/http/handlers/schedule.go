package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
	"github.com/yungbote/studyplan-backend/internal/http/response"
	"github.com/yungbote/studyplan-backend/internal/modules/schedule"
	"github.com/yungbote/studyplan-backend/internal/platform/apierr"
	"github.com/yungbote/studyplan-backend/internal/platform/ctxutil"
)

const invalidatedMessage = "Schedule cache invalidated successfully"

type ScheduleHandler struct {
	svc schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

// GET /schedule/weekly
func (h *ScheduleHandler) GetWeekly(c *gin.Context) {
	out, err := h.svc.WeeklySchedule(c.Request.Context(), ctxutil.GetPrincipal(c.Request.Context()))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /schedule/invalidate
func (h *ScheduleHandler) Invalidate(c *gin.Context) {
	p := ctxutil.GetPrincipal(c.Request.Context())
	if p == nil {
		response.RespondAPIError(c, apierr.Unauthorized("unauthorized"))
		return
	}
	if err := h.svc.InvalidateScheduleCache(c.Request.Context(), p.ID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondMessage(c, invalidatedMessage)
}

// GET /schedule/signals
func (h *ScheduleHandler) GetSignals(c *gin.Context) {
	out, err := h.svc.Signals(c.Request.Context(), ctxutil.GetPrincipal(c.Request.Context()))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /schedule/preferences
func (h *ScheduleHandler) GetPreferences(c *gin.Context) {
	out, err := h.svc.GetPreferences(c.Request.Context(), ctxutil.GetPrincipal(c.Request.Context()))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// PUT /schedule/preferences
func (h *ScheduleHandler) PutPreferences(c *gin.Context) {
	var req domain.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.BadRequest("invalid_request", errors.New("invalid JSON body")))
		return
	}
	out, err := h.svc.UpdatePreferences(c.Request.Context(), ctxutil.GetPrincipal(c.Request.Context()), req)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
