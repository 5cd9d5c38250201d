package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-login-portal/internal/logger"
)

// ErrKeyNotFound is returned when a storage key is absent or expired.
var ErrKeyNotFound = errors.New("storage key not found")

// RedisStorage keeps per-session values in Redis
type RedisStorage struct {
	client *redis.Client
	exp    time.Duration // expiration applied on every write
}

// NewRedisStorage creates a new storage instance; zero expiration keeps keys forever
func NewRedisStorage(client *redis.Client, expiration time.Duration) *RedisStorage {
	return &RedisStorage{
		client: client,
		exp:    expiration,
	}
}

func storageKey(namespace, key string) string {
	return fmt.Sprintf("session:%s:%s", namespace, key)
}

// Set stores value under key in namespace
func (r *RedisStorage) Set(ctx context.Context, namespace, key, value string) error {
	k := storageKey(namespace, key)
	if err := r.client.Set(ctx, k, value, r.exp).Err(); err != nil {
		logger.Log.Errorw("storage set failed", "key", k, "error", err)
		return err
	}

	logger.Log.Infow("storage set", "key", k, "exp", r.exp)
	return nil
}

// Get returns the value under key in namespace
func (r *RedisStorage) Get(ctx context.Context, namespace, key string) (string, error) {
	k := storageKey(namespace, key)

	val, err := r.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logger.Log.Infow("storage key not found", "key", k)
			return "", ErrKeyNotFound
		}
		logger.Log.Errorw("storage get failed", "key", k, "error", err)
		return "", err
	}

	return val, nil
}

// Delete removes key from namespace
func (r *RedisStorage) Delete(ctx context.Context, namespace, key string) error {
	k := storageKey(namespace, key)
	if err := r.client.Del(ctx, k).Err(); err != nil {
		logger.Log.Errorw("storage delete failed", "key", k, "error", err)
		return err
	}

	logger.Log.Infow("storage delete", "key", k)
	return nil
}
