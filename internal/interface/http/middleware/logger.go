package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader 请求id响应头
const RequestIDHeader = "X-Request-ID"

// slowRequest 超过这个耗时记为慢请求
const slowRequest = 3 * time.Second

// Logger 请求日志中间件
//
// 教学要点:
// 1. 每个请求生成唯一的请求ID,同时写入响应头
// 2. 请求结束后输出一条结构化日志(方法、路径、状态码、耗时)
// 3. response.Error挂到c.Errors上的内部错误在这里统一输出
//
// 不记录请求体和访客Token,避免把客户信息写进日志
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 步骤1: 生成请求ID,上游已带则沿用
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()

		// 步骤2: 处理请求
		c.Next()

		// 步骤3: 输出日志
		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if visitorID := GetVisitorID(c); visitorID != "" {
			fields = append(fields, zap.String("visitor_id", visitorID))
		}

		switch {
		case len(c.Errors) > 0:
			logger.Error("请求处理出错", append(fields, zap.String("errors", c.Errors.String()))...)
		case latency > slowRequest:
			logger.Warn("慢请求", fields...)
		default:
			logger.Info("请求完成", fields...)
		}
	}
}

// Recovery panic恢复中间件,输出zap日志后返回500
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("请求处理panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
			zap.Stack("stack"),
		)
		c.AbortWithStatus(500)
	})
}
