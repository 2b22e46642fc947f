package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type StateRepositoryInterface interface {
	SaveState(ctx context.Context, state string, ttl time.Duration) error
	ConsumeState(ctx context.Context, state string) (bool, error)
}

// RedisStateRepository keeps pending OAuth sign-in states.
type RedisStateRepository struct {
	client *redis.Client
}

func NewRedisStateRepository(client *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{client: client}
}

func stateKey(state string) string {
	return "oauth:state:" + state
}

func (r *RedisStateRepository) SaveState(ctx context.Context, state string, ttl time.Duration) error {
	return r.client.Set(ctx, stateKey(state), "1", ttl).Err()
}

// ConsumeState deletes the state and reports whether it was pending. A state can be consumed once.
func (r *RedisStateRepository) ConsumeState(ctx context.Context, state string) (bool, error) {
	n, err := r.client.Del(ctx, stateKey(state)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
