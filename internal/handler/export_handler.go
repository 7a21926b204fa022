package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/internal/service"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

type exporter interface {
	Export(ctx context.Context, p models.Principal, dataset service.ExportDataset, format string) (*service.ExportFile, error)
}

// ExportHandler streams CSV and PDF exports of the dashboard.
type ExportHandler struct {
	service exporter
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(service exporter) *ExportHandler {
	return &ExportHandler{service: service}
}

// Download godoc
// @Summary Export a dashboard dataset
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param dataset path string true "schedules, teachers, students or analytics"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /dashboard/export/{dataset} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	file, err := h.service.Export(c.Request.Context(), principal, service.ExportDataset(c.Param("dataset")), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.Filename, file.ContentType, file.Body)
}
