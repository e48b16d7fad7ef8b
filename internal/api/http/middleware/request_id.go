package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
	loggerKey       = "logger"
)

type requestIDCtxKey struct{}

// RequestID ensures every request has a request id and a request-scoped
// logger, and writes one access log entry per request.
// - Reads X-Request-Id header if present, otherwise generates a UUID
// - Stores it in the gin context and the request context
// - Echoes it back in the X-Request-Id response header
func RequestID(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if rid == "" {
			rid = uuid.NewString()
		}

		entry := log.WithField(requestIDKey, rid)
		c.Set(requestIDKey, rid)
		c.Set(loggerKey, entry)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDCtxKey{}, rid))
		c.Writer.Header().Set(requestIDHeader, rid)

		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		entry.WithFields(fields).Info("request")
	}
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDCtxKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger returns the request-scoped logger, or the standard logger when the
// RequestID middleware did not run.
func Logger(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return logrus.StandardLogger()
}
