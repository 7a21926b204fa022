package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

type formService interface {
	Form(ctx context.Context, p models.Principal, kind models.FormKind) (interface{}, error)
	UpdateForm(ctx context.Context, p models.Principal, kind models.FormKind, field string, value interface{}) (interface{}, error)
	ResetForm(ctx context.Context, p models.Principal, kind models.FormKind) (interface{}, error)
}

// FormHandler exposes the stored modal forms.
type FormHandler struct {
	service formService
}

// NewFormHandler constructs a FormHandler.
func NewFormHandler(service formService) *FormHandler {
	return &FormHandler{service: service}
}

// Get godoc
// @Summary Current form record
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Param kind path string true "teacher, school or session"
// @Success 200 {object} response.Envelope
// @Router /dashboard/forms/{kind} [get]
func (h *FormHandler) Get(c *gin.Context) {
	principal, kind, ok := h.target(c)
	if !ok {
		return
	}
	form, err := h.service.Form(c.Request.Context(), principal, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form)
}

// Patch godoc
// @Summary Set one form field
// @Tags Forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "teacher, school or session"
// @Param payload body dto.FormPatchRequest true "Field update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard/forms/{kind} [patch]
func (h *FormHandler) Patch(c *gin.Context) {
	principal, kind, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.FormPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "field is required"))
		return
	}
	form, err := h.service.UpdateForm(c.Request.Context(), principal, kind, req.Field, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form)
}

// Reset godoc
// @Summary Reset a form to its defaults
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Param kind path string true "teacher, school or session"
// @Success 200 {object} response.Envelope
// @Router /dashboard/forms/{kind} [delete]
func (h *FormHandler) Reset(c *gin.Context) {
	principal, kind, ok := h.target(c)
	if !ok {
		return
	}
	form, err := h.service.ResetForm(c.Request.Context(), principal, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form)
}

func (h *FormHandler) target(c *gin.Context) (models.Principal, models.FormKind, bool) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return models.Principal{}, "", false
	}
	kind, ok := models.ParseFormKind(c.Param("kind"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown form"))
		return models.Principal{}, "", false
	}
	return principal, kind, true
}
