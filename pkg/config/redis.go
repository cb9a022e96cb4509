package config

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects to Redis for the sign-in rate limiter. Redis is
// optional: with no address configured the limiter is simply not
// installed, so a dev setup without Redis still boots.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, sign-in rate limiting disabled.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable (%v), sign-in rate limiting disabled.", err)
		return nil
	}

	log.Println("Successfully connected to Redis!")
	return rdb
}
