package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/dto"
	"github.com/noah-isme/drivedesk-gateway/internal/middleware"
	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

// principalOrAbort returns the principal stored by the auth middleware or
// writes a 401.
func principalOrAbort(c *gin.Context) (models.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok || principal.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return models.Principal{}, false
	}
	return principal, true
}

// bindOptional decodes the JSON body into dest. It reports false without
// error when the request has no body, meaning the stored form applies.
func bindOptional(c *gin.Context, dest interface{}) (bool, error) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return false, nil
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON body")
	}
	return true, nil
}

func snapshotMeta(c *gin.Context, snap *dto.Snapshot) map[string]interface{} {
	middleware.SetMeta(c, "snapshot_version", snap.Version)
	middleware.SetMeta(c, "snapshot_status", snap.Status)
	return middleware.ExtractMeta(c)
}

func truthy(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
