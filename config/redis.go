package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis is nil when REDIS_ADDR is unset; the rate limiter degrades to a
// pass-through in that case.
var Redis *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := Redis.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable at %s, rate limiting disabled: %v", addr, err)
		Redis = nil
	}
}
