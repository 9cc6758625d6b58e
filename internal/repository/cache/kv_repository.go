package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/places-finder/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix отделяет ключи сервиса в общем Redis
const keyPrefix = "places-finder:"

type kvRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewKVRepository создает хранилище ключ-значение в Redis без TTL
func NewKVRepository(redis *Redis) repository.KVStore {
	return &kvRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // ключа нет
	}
	if err != nil {
		r.logger.Error("Failed to get key", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	r.logger.Debug("Key loaded", zap.String("key", key))
	return val, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		r.logger.Error("Failed to set key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}

	r.logger.Debug("Key stored", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		r.logger.Error("Failed to delete key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis delete error: %w", err)
	}

	r.logger.Debug("Key deleted", zap.String("key", key))
	return nil
}
