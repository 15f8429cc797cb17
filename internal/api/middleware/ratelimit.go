package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/stegavault/stegavault/internal/api/shared/errors"
	"github.com/stegavault/stegavault/internal/logger"
	"github.com/stegavault/stegavault/internal/ratelimit"
)

// RateLimit returns a gin middleware limiting requests of a route class per caller.
// Authenticated callers are keyed by account, anonymous ones by client IP.
// Limiter failures are logged and the request proceeds.
func RateLimit(limiter ratelimit.Limiter, route string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key := "ip:" + c.ClientIP()
		if principal, ok := PrincipalFrom(c); ok {
			key = "account:" + principal.AccountID
		}

		decision, err := limiter.Allow(ctx, route, key)
		if err != nil {
			logger.WarnCtx(ctx, "Rate limiter unavailable", zap.Error(err), zap.String("route", route))
			c.Next()
			return
		}

		if !decision.Allowed {
			retryAfter := max(int(math.Ceil(decision.RetryAfter.Seconds())), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			apiErr := apierrors.NewTooManyRequestsError("Too many requests, please retry later")
			c.AbortWithStatusJSON(apiErr.Status, gin.H{
				"success": false,
				"message": apiErr.Message,
				"error":   apiErr,
			})
			return
		}

		c.Next()
	}
}
