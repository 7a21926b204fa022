package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	"github.com/noah-isme/drivedesk-gateway/pkg/middleware/requestid"
)

// ContextAuditResourceKey lets handlers name the record a mutation touched.
const ContextAuditResourceKey = "audit_resource_id"

type auditRecorder interface {
	Record(entry models.AuditLog)
}

// Audit records successful requests of the wrapped route.
func Audit(recorder auditRecorder, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if recorder == nil {
			c.Next()
			return
		}
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		var userID *string
		if principal, ok := PrincipalFrom(c); ok && principal.UserID != "" {
			id := principal.UserID
			userID = &id
		}

		var resourceID *string
		if value := c.GetString(ContextAuditResourceKey); value != "" {
			resourceID = &value
		} else if value := c.Param("id"); value != "" {
			resourceID = &value
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
		})

		recorder.Record(models.AuditLog{
			UserID:     userID,
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID,
			NewValues:  body,
			RequestID:  requestid.Value(c),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
			CreatedAt:  start,
		})
	}
}
