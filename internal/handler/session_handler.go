package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/middleware"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

type sessionScheduler interface {
	ScheduleSession(ctx context.Context, p models.Principal, form *models.SessionForm) (*models.Session, error)
}

// SessionHandler exposes session scheduling.
type SessionHandler struct {
	service sessionScheduler
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(service sessionScheduler) *SessionHandler {
	return &SessionHandler{service: service}
}

// Schedule godoc
// @Summary Schedule a session
// @Description Duration must be 30 to 180 minutes; student and teacher must be approved.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SessionForm false "Session form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard/sessions [post]
func (h *SessionHandler) Schedule(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var form models.SessionForm
	provided, err := bindOptional(c, &form)
	if err != nil {
		response.Error(c, err)
		return
	}
	var submitted *models.SessionForm
	if provided {
		submitted = &form
	}
	session, err := h.service.ScheduleSession(c.Request.Context(), principal, submitted)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Set(middleware.ContextAuditResourceKey, session.ID.String())
	response.Created(c, session)
}
