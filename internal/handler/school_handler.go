package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/middleware"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

type schoolMutator interface {
	UpdateSchoolInfo(ctx context.Context, p models.Principal, form *models.SchoolForm) (*models.SchoolInfo, error)
}

// SchoolHandler exposes school info updates.
type SchoolHandler struct {
	service schoolMutator
}

// NewSchoolHandler constructs a SchoolHandler.
func NewSchoolHandler(service schoolMutator) *SchoolHandler {
	return &SchoolHandler{service: service}
}

// Update godoc
// @Summary Update school information
// @Tags School
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.SchoolForm false "School form"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /dashboard/school [put]
func (h *SchoolHandler) Update(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	var form models.SchoolForm
	provided, err := bindOptional(c, &form)
	if err != nil {
		response.Error(c, err)
		return
	}
	var submitted *models.SchoolForm
	if provided {
		submitted = &form
	}
	school, err := h.service.UpdateSchoolInfo(c.Request.Context(), principal, submitted)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Set(middleware.ContextAuditResourceKey, school.ID.String())
	response.JSON(c, http.StatusOK, school)
}
