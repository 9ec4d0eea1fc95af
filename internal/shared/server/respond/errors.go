package respond

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/telemetry"
)

const debugKey = "respond.debug"

// EnableDebug marks the request so that internal errors include a stack trace.
// Router setup installs it outside production.
func EnableDebug() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(debugKey, true)
		c.Next()
	}
}

// Error sends a failure envelope and aborts the handler chain.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// Internal sends a 500 envelope for an unexpected failure. The cause is logged;
// the stack trace is only returned when debug output is enabled.
func Internal(c *gin.Context, message string, err error) {
	fields := map[string]any{
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	telemetry.Error("http.internal", fields)

	body := Envelope{Success: false, Message: message}
	if c.GetBool(debugKey) {
		body.Stack = string(debug.Stack())
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, body)
}
