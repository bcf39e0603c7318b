package middleware

import (
	"leavehr/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestID assigns or propagates an X-Request-ID and attaches a scoped
// logger to the request context for downstream layers.
func RequestID(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Header("X-Request-ID", rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		if logger != nil {
			ctx = contextutil.WithLogger(ctx, logger.With(zap.String("request_id", rid)))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
