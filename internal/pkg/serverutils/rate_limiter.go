package serverutils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware enforces a fixed per-minute request budget per client
// IP, counted in Redis so every instance shares the same window. When Redis
// is unavailable the request passes; throttling is protection, not a
// dependency.
func RateLimitMiddleware(rdb *redis.Client, perMinute int) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rdb == nil || perMinute <= 0 {
			return ctx.Next()
		}

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d", ctx.IP(), window)

		count, err := rdb.Incr(ctx.Context(), key).Result()
		if err != nil {
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(ctx.Context(), key, time.Minute)
		}

		if count > int64(perMinute) {
			return ctx.Status(fiber.StatusTooManyRequests).
				JSON(ErrorResponse(fiber.StatusTooManyRequests, "Too many requests, slow down"))
		}

		return ctx.Next()
	}
}
