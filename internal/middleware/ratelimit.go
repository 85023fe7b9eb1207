package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"duckstore/internal/apperrors"
)

// RateLimiter is a fixed-window request counter per client IP stored in Redis.
// A nil client disables limiting.
type RateLimiter struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewRateLimiter creates a RateLimiter.
func NewRateLimiter(client *redis.Client, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{redisClient: client, logger: logger}
}

// Limit allows at most limit requests per window for each IP under keySuffix.
// Redis failures let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.redisClient == nil || limit <= 0 {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.IP())

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.WarnContext(ctx, "rate limiter unavailable", "error", err)
			return c.Next()
		}
		if count == 1 {
			// A key without a TTL would throttle this IP forever.
			if err := rl.redisClient.Expire(ctx, key, window).Err(); err != nil {
				rl.logger.WarnContext(ctx, "failed to set rate limit window", "key", key, "error", err)
				rl.redisClient.Del(ctx, key)
				return c.Next()
			}
		}

		if count > int64(limit) {
			if ttl, err := rl.redisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%.0f", ttl.Seconds()))
			}
			return apperrors.ErrRateLimited
		}
		return c.Next()
	}
}
