package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/shared/server/respond"
	"ats-checker/internal/shared/telemetry"
)

// CodeInternal is returned for any panic escaping a handler.
const CodeInternal = "INTERNAL_ERROR"

// Recovery turns handler panics into a 500 envelope. gin's own stderr dump
// is discarded; the stack goes to the structured log instead.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		telemetry.Error("panic", map[string]any{
			"request_id": RequestIDFromContext(c),
			"error":      fmt.Sprint(rec),
			"stack":      string(debug.Stack()),
			"route":      c.FullPath(),
			"method":     c.Request.Method,
		})
		if c.Writer.Written() {
			c.Abort()
			return
		}
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
	})
}
