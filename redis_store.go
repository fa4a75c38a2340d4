package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps collection blobs in Redis, for deployments that want the
// data reachable from more than one host.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Load retrieves the blob for a kind. A missing key is not an error.
func (s *RedisStore) Load(ctx context.Context, kind string) ([]byte, error) {
	blob, err := s.client.Get(ctx, storageKey(kind)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", kind, err)
	}
	return blob, nil
}

// Save overwrites the blob for a kind.
func (s *RedisStore) Save(ctx context.Context, kind string, blob []byte) error {
	if err := s.client.Set(ctx, storageKey(kind), blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", kind, err)
	}
	return nil
}
