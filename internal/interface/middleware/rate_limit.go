package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/digital-user-report/pkg/metrics"
	"github.com/oksasatya/digital-user-report/pkg/response"
)

// ipFromCtx prefers the address resolved by RealIP
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func routeOf(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc derives the bucket a request is counted against
type KeyFunc func(c *gin.Context) string

// KeyByIP buckets by client address
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath buckets by route template and client address, so each
// proxied report gets its own allowance
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + routeOf(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByOperator limits authenticated operators by name and everyone else by IP
func KeyByOperator() KeyFunc {
	return func(c *gin.Context) string {
		op := c.GetString(CtxOperatorKey)
		if op == "" {
			return "rl:op:anon:ip:" + ipFromCtx(c)
		}
		return "rl:op:" + op
	}
}

// AllowFunc returns true when the request skips the limit
type AllowFunc func(*gin.Context) bool

// RatePolicy is a fixed-window allowance. Name labels the rejection metric.
type RatePolicy struct {
	Name   string
	Limit  int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
}

// windowScript increments the bucket, starts the window on the first hit
// and returns {count, remaining ms}.
var windowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type windowState struct {
	count int
	reset int // seconds until the window closes
}

func hitWindow(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (windowState, error) {
	vals, err := windowScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return windowState{}, err
	}
	st := windowState{}
	if len(vals) > 0 {
		st.count = int(vals[0])
	}
	if len(vals) > 1 && vals[1] > 0 {
		st.reset = int((time.Duration(vals[1])*time.Millisecond + time.Second - 1) / time.Second)
	}
	return st, nil
}

// RateLimit enforces p against redis counters. A nil client or an empty
// policy disables it, and redis errors let the request through.
func RateLimit(rdb *redis.Client, p RatePolicy) gin.HandlerFunc {
	if rdb == nil || p.Limit <= 0 || p.Window <= 0 || p.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if p.Name == "" {
		p.Name = "default"
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (p.Allow != nil && p.Allow(c)) {
			c.Next()
			return
		}

		st, err := hitWindow(c, rdb, p.Key(c), p.Window)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(p.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(p.Limit-st.count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(st.reset))

		if st.count > p.Limit {
			metrics.RateLimitedTotal.WithLabelValues(p.Name).Inc()
			if st.reset > 0 {
				c.Header("Retry-After", strconv.Itoa(st.reset))
			}
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
