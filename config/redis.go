package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

var RedisClient *redis.Client

// InitRedis connects the list-cache client. Callers skip this entirely when no
// redis host is configured; RedisClient stays nil and caching is a no-op.
func InitRedis(config Config) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     config.GetRedisConnString(),
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	if _, err := RedisClient.Ping(context.Background()).Result(); err != nil {
		RedisClient = nil
		return fmt.Errorf("redis connection test failed: %v", err)
	}

	return nil
}
