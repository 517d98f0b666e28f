package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lbrrrrrr/enjoyyoga/internal/logging"
)

const RequestIDKey = "request_id"
const LoggerKey = "logger"

// RequestID injects a request ID into the context and response headers,
// and stashes a request-scoped zap logger under LoggerKey.
func RequestID(baseLogger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(RequestIDKey, reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)

		c.Set(LoggerKey, logging.WithRequestID(baseLogger, reqID))

		c.Next()
	}
}

// ContextLogger returns the request-scoped logger, or a no-op logger when
// the middleware did not run (tests exercising handlers directly).
func ContextLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(LoggerKey); ok {
		if logger, ok := v.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}
