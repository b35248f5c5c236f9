package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerline/ledgerline-api/libs/go/logger"
	"go.uber.org/zap"
)

// maxLoggedBody caps how much of a request body the debug logger keeps
const maxLoggedBody = 4096

var redactedHeaders = map[string]bool{
	"Authorization": true,
	"X-Api-Key":     true,
	"Cookie":        true,
}

// requestLogger builds the structured logger for the current request
func requestLogger(c *gin.Context) *logger.StructuredLogger {
	sl := logger.NewStructuredLogger(logger.ComponentAPI).
		WithCorrelationID(GetCorrelationID(c))
	if id, ok := GetWorkspaceID(c); ok {
		sl = sl.WithWorkspaceID(id.String())
	}
	if id, ok := GetActorID(c); ok {
		sl = sl.WithActorID(id.String())
	}
	return sl
}

// RequestLoggingMiddleware logs one line per request once it has completed.
// Routes are logged by template so ids stay out of the path field.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		sl := requestLogger(c).
			WithField("client_ip", c.ClientIP()).
			WithField("body_size", c.Writer.Size())
		for _, e := range c.Errors {
			sl.Error("Request error", e.Err)
		}
		sl.LogHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

// DebugBodyLoggingMiddleware logs request headers and bodies at debug level.
// It is only installed outside prod.
func DebugBodyLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger.Log == nil || !logger.Log.Core().Enabled(zap.DebugLevel) {
			c.Next()
			return
		}

		var body []byte
		if c.Request.Body != nil && c.Request.Method != http.MethodGet {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody]
		}

		headers := make(map[string]string, len(c.Request.Header))
		for key, values := range c.Request.Header {
			if redactedHeaders[key] {
				headers[key] = "[REDACTED]"
				continue
			}
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		LogWithCorrelationID(c.Request.Context()).Debug("Request received",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Any("headers", headers),
			zap.ByteString("body", body),
		)

		c.Next()
	}
}
