package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger returns a gin middleware that logs every request once it completes.
// Server errors are logged at error level, client errors at warn.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"request_id", GetRequestID(c),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if subject := GetSubject(c); subject != "" {
			attrs = append(attrs, "subject", subject)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("Request completed", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("Request completed", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}
