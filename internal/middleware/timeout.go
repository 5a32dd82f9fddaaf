package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type TimeoutConfig struct {
	Duration time.Duration
}

func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{Duration: 30 * time.Second}
}

// Timeout bounds the request context so slow storage or SMTP cannot
// hold a booking request open indefinitely. Handlers observe the
// deadline through ctx; a 504 is written only if nothing was sent yet.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, ErrorResponse{
				Code:    http.StatusGatewayTimeout,
				Message: "request timed out",
				TraceID: c.GetString(ContextRequestID),
			})
		}
	}
}
