package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/xiebiao/bookstore-storefront/pkg/errors"
	"github.com/xiebiao/bookstore-storefront/pkg/response"
)

// limiterIdle 超过这个时间没有请求的限流器会被清理
const limiterIdle = 3 * time.Minute

type visitorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 按访客限流(令牌桶)
// 没有访客id时(Identify之前)按客户端IP限流
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitorLimiter
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter 创建限流器,rps为每秒令牌数,burst为桶容量
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*visitorLimiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Middleware 返回gin中间件
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetVisitorID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if !l.allow(key) {
			response.Error(c, apperrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Len 当前跟踪的限流器数量
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// 顺带清理长时间不活跃的条目,不单独起goroutine
	if now.Sub(l.lastSweep) > limiterIdle {
		for k, v := range l.limiters {
			if now.Sub(v.lastSeen) > limiterIdle {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.limiters[key]
	if !ok {
		v = &visitorLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}
