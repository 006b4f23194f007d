package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinical-risk-gateway/internal/metrics"
)

// Metrics records every request against its route template.
func Metrics(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
