package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "weekly-planner/backend/pkg/errors"
	"weekly-planner/backend/pkg/redis"
	"weekly-planner/backend/pkg/response"
)

// RateLimit 写接口速率限制中间件
// limit: 窗口内允许的最大请求数
// window: 窗口时长
// rdb 非 nil 时使用 Redis 滑动窗口（多实例共享）；否则按客户端 IP 使用进程内令牌桶
// 只读请求（GET/HEAD/OPTIONS）不计数
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	local := newLocalLimiter(limit, window)

	return func(c *gin.Context) {
		if isReadOnly(c.Request.Method) {
			c.Next()
			return
		}

		var allowed bool
		if rdb != nil {
			ok, err := rdb.CheckRateLimit(c.Request.Context(), redis.RateLimitKey(c.ClientIP(), c.FullPath()), limit, window)
			if err != nil {
				// Redis 出错时降级到进程内令牌桶
				logger.Warn("Redis 限流失败，降级为本地限流", zap.Error(err))
				ok = local.allow(c.ClientIP())
			}
			allowed = ok
		} else {
			allowed = local.allow(c.ClientIP())
		}

		if !allowed {
			c.Header("Retry-After", retryAfterSeconds(window))
			response.Error(c, http.StatusTooManyRequests, apperrors.CodeRateLimited, "Muitas requisições, tente novamente mais tarde")
			return
		}

		c.Next()
	}
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func retryAfterSeconds(window time.Duration) string {
	secs := int(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// ── 进程内令牌桶 ──

// localLimiter 每个客户端 IP 一个令牌桶，容量为 limit，每 window/limit 补充一个令牌
type localLimiter struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	clients map[string]*rate.Limiter
}

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &localLimiter{
		every:   rate.Every(window / time.Duration(limit)),
		burst:   limit,
		clients: make(map[string]*rate.Limiter),
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.clients[key]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.clients[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
