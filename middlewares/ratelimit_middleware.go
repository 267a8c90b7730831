package middlewares

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"campusmatch/config"

	"github.com/gin-gonic/gin"
)

// RateLimit is a fixed-window per-IP limiter for endpoints that fan out to
// external services (the credential scrape). Pass-through when redis is not
// configured or unreachable.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.Redis == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		ctx := c.Request.Context()

		count, err := config.Redis.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("rate limiter redis error: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			config.Redis.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			retry := config.Redis.TTL(ctx, key).Val()
			c.Header("Retry-After", fmt.Sprintf("%d", int(retry.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, try again later",
			})
			return
		}

		c.Next()
	}
}
