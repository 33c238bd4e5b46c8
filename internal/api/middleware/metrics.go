package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"jr-escala/backend/pkg/metrics"
)

// Metrics HTTP 指标中间件，按路由模板而非原始路径聚合
func Metrics(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
