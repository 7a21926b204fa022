package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/middleware"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/internal/service"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

// ConfirmHeader carries the client's answer to a destructive-action prompt.
const ConfirmHeader = "X-Confirm-Action"

type teacherMutator interface {
	AddTeacher(ctx context.Context, p models.Principal, form *models.TeacherForm) (*models.Teacher, error)
	RemoveTeacher(ctx context.Context, p models.Principal, teacherID models.ID, confirmer service.Confirmer) error
}

// TeacherHandler exposes teacher mutations.
type TeacherHandler struct {
	service teacherMutator
}

// NewTeacherHandler constructs a TeacherHandler.
func NewTeacherHandler(service teacherMutator) *TeacherHandler {
	return &TeacherHandler{service: service}
}

// Add godoc
// @Summary Add a teacher
// @Description Submits the body, or the stored teacher form when the body is empty.
// @Tags Teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.TeacherForm false "Teacher form"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard/teachers [post]
func (h *TeacherHandler) Add(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var form models.TeacherForm
	provided, err := bindOptional(c, &form)
	if err != nil {
		response.Error(c, err)
		return
	}
	var submitted *models.TeacherForm
	if provided {
		submitted = &form
	}
	teacher, err := h.service.AddTeacher(c.Request.Context(), principal, submitted)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Set(middleware.ContextAuditResourceKey, teacher.ID.String())
	response.Created(c, teacher)
}

// Remove godoc
// @Summary Remove a teacher
// @Description Requires confirm=true or the X-Confirm-Action header; otherwise responds 409 with the prompt.
// @Tags Teachers
// @Security BearerAuth
// @Param id path string true "Teacher ID"
// @Param confirm query bool false "Confirms the removal"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /dashboard/teachers/{id} [delete]
func (h *TeacherHandler) Remove(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	confirmer := service.ConfirmFunc(func(context.Context, string) bool {
		return truthy(c.Query("confirm")) || truthy(c.GetHeader(ConfirmHeader))
	})
	id := models.ID(strings.TrimSpace(c.Param("id")))
	if err := h.service.RemoveTeacher(c.Request.Context(), principal, id, confirmer); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
