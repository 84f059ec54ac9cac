package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"weekly-planner/backend/pkg/metrics"
)

// Metrics 记录请求数、耗时与并发数，路径使用路由模板
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.RequestStarted()
		start := time.Now()

		c.Next()

		done()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
