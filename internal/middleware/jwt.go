package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/drivedesk-gateway/internal/models"
	appErrors "github.com/noah-isme/drivedesk-gateway/pkg/errors"
	"github.com/noah-isme/drivedesk-gateway/pkg/response"
)

// ContextPrincipalKey is the gin context key storing the acting principal.
const ContextPrincipalKey = "principal"

type principalResolver interface {
	Principal(token string) (models.Principal, error)
}

// Auth requires a bearer token and stores the resolved principal. The token
// itself is forwarded to the backend, which stays the authority on access.
func Auth(tokens principalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		principal, err := tokens.Principal(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Auth.
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}
