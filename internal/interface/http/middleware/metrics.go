package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/xiebiao/bookstore-storefront/pkg/metrics"
)

// Metrics HTTP指标中间件
// path标签使用路由模板(/api/v1/cart/items/:book_id),避免id撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.AddGauge(metrics.HTTPRequestsInProgress, 1)
		defer metrics.AddGauge(metrics.HTTPRequestsInProgress, -1)

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.IncCounterVec(metrics.HTTPRequestsTotal, prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, prometheus.Labels{
			"method": c.Request.Method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
