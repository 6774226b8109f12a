package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CtxLoggerKey holds the request-scoped logger.
const CtxLoggerKey = "logger"

// RequestLogger stores a logger carrying the request id in the context and
// logs one line per request once it completes.
func RequestLogger(base logrus.FieldLogger, logRequests bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		l := base.WithField("request_id", c.GetString("request_id"))
		c.Set(CtxLoggerKey, l)
		c.Next()

		if !logRequests {
			return
		}
		entry := l.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.GetString("real_ip"),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
	}
}

// Logger returns the request-scoped logger, or fallback when none was set.
func Logger(c *gin.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := c.Get(CtxLoggerKey); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return fallback
}
