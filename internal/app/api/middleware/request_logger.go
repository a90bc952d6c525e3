package middleware

import (
	"github.com/fatflowers/frontdesk/pkg/logctx"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware attaches a logger enriched with trace_id and desk_id
// to gin.Context and the request context.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := []interface{}{"trace_id", c.GetString(string(logctx.TraceIDKey))}
		if deskID := c.GetString(string(logctx.DeskIDKey)); deskID != "" {
			fields = append(fields, "desk_id", deskID)
		}
		reqLogger := base.With(fields...)

		c.Set(string(logctx.LoggerKey), reqLogger)
		c.Request = c.Request.WithContext(logctx.WithLogger(c.Request.Context(), reqLogger))

		c.Next()
	}
}
