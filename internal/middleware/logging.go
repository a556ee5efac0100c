// Package middleware provides gin middleware shared by the HTTP surface.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger returns a gin middleware that logs every request. It logs
// the method, path, status code, duration, and any errors handlers attached
// to the context.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case c.Writer.Status() >= 500:
			slog.Error("request failed", append(attrs, "errors", c.Errors.String())...)
		case c.Writer.Status() >= 400:
			slog.Warn("request rejected", append(attrs, "errors", c.Errors.String())...)
		default:
			slog.Info("request ok", attrs...)
		}
	}
}
