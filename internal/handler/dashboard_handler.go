package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/internal/service"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

type snapshotService interface {
	Snapshot(ctx context.Context, p models.Principal) (*dto.Snapshot, error)
	RefreshAll(ctx context.Context, p models.Principal) (*dto.Snapshot, error)
	Discard(ctx context.Context, p models.Principal) error
}

type viewService interface {
	View(ctx context.Context, p models.Principal, tab dto.Tab) (interface{}, error)
	Distribution(ctx context.Context, p models.Principal) ([]dto.DistributionRow, error)
}

// DashboardHandler serves the aggregate snapshot and its tab views.
type DashboardHandler struct {
	snapshots snapshotService
	views     viewService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(snapshots snapshotService, views viewService) *DashboardHandler {
	return &DashboardHandler{snapshots: snapshots, views: views}
}

// Get godoc
// @Summary Current dashboard snapshot
// @Description Returns the stored snapshot, loading it from the backend on first use.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	snap, err := h.snapshots.Snapshot(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, snapshotMeta(c, snap))
}

// Refresh godoc
// @Summary Refresh dashboard data
// @Description Re-reads every dashboard resource. Individual failures degrade to empty slices.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	snap, err := h.snapshots.RefreshAll(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, snapshotMeta(c, snap))
}

// Discard godoc
// @Summary Drop the stored dashboard snapshot
// @Tags Dashboard
// @Security BearerAuth
// @Success 204
// @Router /dashboard [delete]
func (h *DashboardHandler) Discard(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	if err := h.snapshots.Discard(c.Request.Context(), principal); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// View godoc
// @Summary Dashboard tab view
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param tab path string true "overview, teachers, students, school-info, analytics or schedules"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /dashboard/views/{tab} [get]
func (h *DashboardHandler) View(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	tab, err := service.ParseTab(c.Param("tab"))
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.views.View(c.Request.Context(), principal, tab)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Distribution godoc
// @Summary Session type distribution
// @Description Percentages are whole numbers rounded half away from zero.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/distribution [get]
func (h *DashboardHandler) Distribution(c *gin.Context) {
	principal, ok := principalOrAbort(c)
	if !ok {
		return
	}
	rows, err := h.views.Distribution(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}
