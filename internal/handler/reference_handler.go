package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

// ReferenceHandler serves static lookup lists used by the forms.
type ReferenceHandler struct{}

// NewReferenceHandler constructs a ReferenceHandler.
func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// States godoc
// @Summary Wilayas accepted as a school state
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /states [get]
func (h *ReferenceHandler) States(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.States, map[string]interface{}{"total": len(models.States)})
}

// SessionTypes godoc
// @Summary Session types offered by schools
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /session-types [get]
func (h *ReferenceHandler) SessionTypes(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.SessionTypes)
}
