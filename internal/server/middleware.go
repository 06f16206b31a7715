package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/curricula/internal/logger"
)

// SessionHeader carries the caller's session id.
const SessionHeader = "X-Session-ID"

const sessionKey = "session_id"

// SessionID reads the session from the header or the "session" query
// parameter. With create set, a missing session gets a new id, echoed in
// the response header.
func SessionID(create bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			id = strings.TrimSpace(c.Query("session"))
		}
		if id == "" && create {
			id = uuid.NewString()
		}
		if id != "" {
			c.Set(sessionKey, id)
			c.Header(SessionHeader, id)
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// RequestLogger logs one line per request, at Error for 5xx and Warn
// for 4xx.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []any{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id := sessionFrom(c); id != "" {
			fields = append(fields, "session", id)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
