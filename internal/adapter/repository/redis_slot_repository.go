package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"luxuryline/internal/domain/repository"
)

const redisKeyPrefix = "luxuryline:slot:"

type redisSlotRepository struct {
	client *redis.Client
}

func NewRedisSlotRepository(client *redis.Client) repository.SlotStore {
	return &redisSlotRepository{client: client}
}

func (r *redisSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSlotNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set stores without expiry, matching browser local storage.
func (r *redisSlotRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisSlotRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
