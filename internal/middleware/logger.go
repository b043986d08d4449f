package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID assigns each request an ID, honoring one supplied by the
// edge gateway, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one access-log line per request. The firm resolved by
// FirmContext is included so log lines correlate with tenant activity.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		firm := "-"
		if id, err := GetFirmID(c); err == nil {
			firm = id.String()
		}

		requestID := c.GetString("request_id")
		log.Printf("http: %s %s status=%d firm=%s dur=%s rid=%s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			firm,
			time.Since(start).Round(time.Microsecond),
			requestID,
		)
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
