package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/davidkuria/resto-api/pkg/metrics"
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}
