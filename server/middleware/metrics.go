package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/labauth/observability"
)

// Metrics records request count, duration and in-flight gauge. The route
// label is Gin's route template so path parameters do not explode
// cardinality; unmatched requests share one label.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.RecordRequestStart(ctx)
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequestEnd(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
