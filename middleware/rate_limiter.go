package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiter applies fixed-window limits keyed by client IP, backed by
// Redis so limits hold across instances. A nil limiter disables limiting.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

type RateLimitRule struct {
	MaxRequests int
	Window      time.Duration
}

// Auth endpoints are the brute-force surface, so each gets its own budget.
var (
	RuleRegister       = RateLimitRule{MaxRequests: 3, Window: time.Hour}
	RuleLogin          = RateLimitRule{MaxRequests: 10, Window: 15 * time.Minute}
	RuleVerify         = RateLimitRule{MaxRequests: 5, Window: 10 * time.Minute}
	RuleResend         = RateLimitRule{MaxRequests: 5, Window: 10 * time.Minute}
	RuleForgotPassword = RateLimitRule{MaxRequests: 3, Window: time.Hour}
)

// Atomic check-and-increment; the first hit in a window sets the expiry.
// Returns {allowed, remaining}.
const fixedWindowScript = `
local key = KEYS[1]
local expiry = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])

local current = redis.call('GET', key)

if current == false then
	redis.call('SET', key, 1, 'EX', expiry)
	return {1, limit - 1}
end

local count = tonumber(current)
if count >= limit then
	return {0, 0}
end

local new_count = redis.call('INCR', key)
return {1, limit - new_count}
`

// Limit returns a middleware enforcing rule for the named endpoint. Redis
// failures never block the request.
func (l *RateLimiter) Limit(name string, rule RateLimitRule) gin.HandlerFunc {
	if l == nil || l.rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate:fw:%s:ip:%s", name, c.ClientIP())

		result, err := l.rdb.Eval(c.Request.Context(), fixedWindowScript, []string{key},
			int(rule.Window.Seconds()), rule.MaxRequests).Result()
		if err != nil {
			log.Warn().Err(err).Str("endpoint", name).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		values := result.([]interface{})
		allowed := values[0].(int64) == 1
		remaining := values[1].(int64)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rule.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			log.Warn().
				Str("endpoint", name).
				Str("ip", c.ClientIP()).
				Msg("rate limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many requests, please try again in %v", rule.Window),
				"retry_after": int(rule.Window.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
