package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/refdata-console/pkg/response"
)

// windowScript counts a hit in a fixed window and returns the count together
// with the milliseconds left, so one round trip serves both headers.
var windowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Limiter is a fixed-window counter shared by every replica through Redis.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

// Decision is the outcome of one hit.
type Decision struct {
	Allowed   bool
	Remaining int
	// Reset is the time left in the current window, rounded up to whole seconds.
	Reset time.Duration
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, limit: limit, window: window}
}

// Take records a hit against key.
func (l *Limiter) Take(ctx context.Context, key string) (Decision, error) {
	vals, err := windowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if len(vals) != 2 {
		return Decision{}, fmt.Errorf("rate limit %s: unexpected reply %v", key, vals)
	}
	count, left := int(vals[0]), time.Duration(vals[1])*time.Millisecond
	d := Decision{
		Allowed:   count <= l.limit,
		Remaining: max(l.limit-count, 0),
	}
	if left > 0 {
		d.Reset = (left + time.Second - 1).Truncate(time.Second)
	}
	return d, nil
}

// AllowFunc reports whether a request skips the limiter.
type AllowFunc func(*gin.Context) bool

// RateLimit answers 429 once a key goes over limit within window and sets
// the X-RateLimit headers on every counted request. Preflight requests and
// those allow accepts are not counted. Without Redis, or when Redis fails,
// requests pass through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || limit <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	l := NewLimiter(rdb, limit, window)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}
		d, err := l.Take(c.Request.Context(), keyFn(c))
		if err != nil {
			c.Next()
			return
		}
		reset := strconv.Itoa(int(d.Reset / time.Second))
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", reset)
		if !d.Allowed {
			if d.Reset > 0 {
				c.Header("Retry-After", reset)
			}
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
