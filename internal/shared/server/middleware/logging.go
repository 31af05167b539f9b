package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"outreach-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	JobTitleKey = "jobTitle"
	TargetURL   = "targetUrl"
	DegradedKey = "degraded"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if title := c.GetString(JobTitleKey); title != "" {
			fields["job_title"] = title
		}
		if target := c.GetString(TargetURL); target != "" {
			fields["target_url"] = target
		}
		if degraded, ok := c.Get(DegradedKey); ok {
			fields["degraded"] = degraded
		}
		telemetry.Info("request.complete", fields)
	}
}
