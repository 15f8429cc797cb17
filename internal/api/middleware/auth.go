package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
	"github.com/stegavault/stegavault/internal/auth"
	"github.com/stegavault/stegavault/internal/domain"
	"github.com/stegavault/stegavault/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const PRINCIPAL_KEY contextKey = "principal"

// Auth returns a gin middleware resolving the session token into a principal
func Auth(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err == nil {
			var principal *domain.Principal
			principal, err = authenticator.Authenticate(ctx, token)
			if err == nil {
				c.Set(PRINCIPAL_KEY, *principal)
				logger.DebugCtx(ctx, "Session authentication successful",
					zap.String("path", c.Request.URL.Path),
					zap.String("accountID", principal.AccountID),
				)
				c.Next()
				return
			}
		}

		apiErr := apierrors.FromError(err)
		if apiErr.Status >= 500 {
			logger.ErrorCtx(ctx, err, zap.String("path", c.Request.URL.Path))
		} else {
			logger.WarnCtx(ctx, "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
		}
		c.AbortWithStatusJSON(apiErr.Status, gin.H{
			"success": false,
			"message": apiErr.Message,
			"error":   apiErr,
		})
	}
}

// PrincipalFrom returns the principal stored by Auth
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	value, ok := c.Get(PRINCIPAL_KEY)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := value.(domain.Principal)
	return principal, ok
}
