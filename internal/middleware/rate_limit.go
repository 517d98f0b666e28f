package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	defaultBucketSize    = 100
	defaultRefillRate    = 10
	defaultWindowSeconds = 1
)

// RateLimiter implements a token bucket per client IP backed by Redis.
// The booking and contact endpoints sit behind it to blunt form abuse.
type RateLimiter struct {
	rdb         *redis.Client
	bucketSize  int
	refillRate  int
	windowInSec int
}

func NewRateLimiter(rdb *redis.Client, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		rdb:         rdb,
		bucketSize:  defaultBucketSize,
		refillRate:  defaultRefillRate,
		windowInSec: defaultWindowSeconds,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

type RateLimiterOption func(*RateLimiter)

func WithBucketSize(size int) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.bucketSize = size
	}
}

func WithRefillRate(rate int) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.refillRate = rate
	}
}

func WithWindow(seconds int) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.windowInSec = seconds
	}
}

// RateLimit enforces the token bucket. Clients are keyed by authenticated
// subject when present, IP otherwise.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.ClientIP()
		if sub := c.GetString(TokenSubKey); sub != "" {
			clientID = sub
		}

		key := fmt.Sprintf("rate_limit:%s", clientID)
		bucketKey := key + ":bucket"
		lastUpdateKey := key + ":last_update"
		now := time.Now().Unix()

		tokens := rl.bucketSize
		if raw, err := rl.rdb.Get(c, bucketKey).Int(); err == nil {
			tokens = raw
			if last, err := rl.rdb.Get(c, lastUpdateKey).Int64(); err == nil {
				elapsed := int(now - last)
				if elapsed > 0 {
					tokens = min(rl.bucketSize, tokens+elapsed*rl.refillRate)
				}
			}
		}

		if tokens <= 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.bucketSize))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(now+int64(rl.windowInSec), 10))
			c.AbortWithStatusJSON(429, gin.H{"error": "Rate limit exceeded"})
			return
		}

		tokens--
		pipe := rl.rdb.TxPipeline()
		pipe.Set(c, bucketKey, tokens, time.Duration(rl.windowInSec)*time.Second)
		pipe.Set(c, lastUpdateKey, now, time.Duration(rl.windowInSec)*time.Second)
		if _, err := pipe.Exec(c); err != nil {
			// Redis trouble should not take bookings down with it.
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.bucketSize))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(tokens))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(now+int64(rl.windowInSec), 10))

		c.Next()
	}
}
