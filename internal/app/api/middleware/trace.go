package middleware

import (
	"context"

	"github.com/fatflowers/frontdesk/pkg/logctx"
	"github.com/fatflowers/frontdesk/pkg/tool"
	"github.com/gin-gonic/gin"
)

const (
	HeaderRequestID = "X-Request-ID"
	// HeaderDeskID identifies the front desk terminal that sent the request.
	HeaderDeskID = "X-Desk-ID"
)

// TraceMiddleware reads X-Request-ID or generates one, and stores it with the desk id
// in both gin.Context and the request context.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" {
			traceID = tool.GenerateTraceID()
		}
		deskID := c.GetHeader(HeaderDeskID)

		c.Set(string(logctx.TraceIDKey), traceID)
		ctx := context.WithValue(c.Request.Context(), logctx.TraceIDKey, traceID)
		if deskID != "" {
			c.Set(string(logctx.DeskIDKey), deskID)
			ctx = context.WithValue(ctx, logctx.DeskIDKey, deskID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(HeaderRequestID, traceID)

		c.Next()
	}
}
