package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/telemetry"
)

// Recovery turns a handler panic into the 500 envelope. A panic caused by the
// client hanging up is logged and the request aborted without a body.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      fmt.Sprint(rec),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}
			if clientGone(rec) {
				telemetry.Info("client.disconnected", fields)
				c.Abort()
				return
			}
			fields["stack"] = string(debug.Stack())
			telemetry.Error("panic", fields)
			respond.Internal(c, "Internal Server Error", fmt.Errorf("panic: %v", rec))
		}()
		c.Next()
	}
}

func clientGone(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}
