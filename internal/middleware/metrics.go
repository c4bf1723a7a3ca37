package middleware

import (
	"strconv"
	"time"

	"abbafoods/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count and latency per route template. Unmatched
// paths are grouped under "unmatched" to keep label cardinality bounded.
func Metrics(mreg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mreg == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		mreg.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		mreg.HTTPLatencySec.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
