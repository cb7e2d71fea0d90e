package storage

import (
	"context"
	"sort"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/talis/internal/errors"
	redisclient "github.com/KirkDiggler/talis/internal/redis"
)

const scanBatchSize = 100

// RedisConfig holds the configuration for the Redis backend
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisStore struct {
	client redisclient.Client
}

// NewRedis creates a KeyValue backed by Redis. Values are stored as plain
// strings without expiry.
func NewRedis(cfg *RedisConfig) (KeyValue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisStore{client: cfg.Client}, nil
}

// GetItem returns the stored value and whether the key exists
func (r *redisStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get item from Redis")
	}
	return value, true, nil
}

// SetItem stores value under key
func (r *redisStore) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to set item in Redis")
	}
	return nil
}

// RemoveItem deletes key
func (r *redisStore) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete item from Redis")
	}
	return nil
}

// Keys scans for every key starting with prefix
func (r *redisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, escapePattern(prefix)+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan keys in Redis")
	}
	sort.Strings(keys)
	return keys, nil
}

// escapePattern quotes the glob metacharacters understood by SCAN MATCH
func escapePattern(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
