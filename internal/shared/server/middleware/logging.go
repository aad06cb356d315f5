package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/shared/telemetry"
)

// health routes hit by load balancers and scrapers every few seconds
var quietRoutes = map[string]bool{
	"/health":        true,
	"/ready":         true,
	"/metrics":       true,
	"/api/v1/health": true,
}

// Logging emits one request.complete line per request. Failed requests log
// at warn (4xx) or error (5xx); preflights and health checks are not logged.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		if status < http.StatusBadRequest && quietRoutes[c.FullPath()] {
			return
		}

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"bytes_in":    c.Request.ContentLength,
			"bytes_out":   c.Writer.Size(),
			"client_ip":   c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		switch {
		case status >= http.StatusInternalServerError:
			telemetry.Error("request.complete", fields)
		case status >= http.StatusBadRequest:
			telemetry.Warn("request.complete", fields)
		default:
			telemetry.Info("request.complete", fields)
		}
	}
}
