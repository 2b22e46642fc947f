package configs

import (
	"github.com/go-redis/redis/v8"
)

func ConnectRedis(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
}
