// internal/app/system/kv/redis.go
package kv

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Redis implements Store and Window on a Redis-compatible server
// (including hosted stores reached by URL + token).
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the store at url (redis:// or rediss://). When
// token is non-empty it overrides the password embedded in the URL.
// The connection is verified with a ping before returning.
func NewRedis(ctx context.Context, url, token string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse kv store url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("kv store ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	return val, nil
}

// SetWithTTL implements Store.
func (r *Redis) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("kv del %q: %w", key, err)
	}
	return nil
}

// WindowCount implements Window. Events are members of a sorted set
// scored by their nanosecond timestamp; pruning and counting run in one
// pipeline.
func (r *Redis) WindowCount(ctx context.Context, key string, window time.Duration) (int64, error) {
	cutoff := strconv.FormatInt(time.Now().Add(-window).UnixNano(), 10)

	var card *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "0", cutoff)
		card = pipe.ZCard(ctx, key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("kv window count %q: %w", key, err)
	}
	return card.Val(), nil
}

// WindowAdd implements Window. Members are random so that two events in
// the same instant both count.
func (r *Redis) WindowAdd(ctx context.Context, key string, at time.Time, window time.Duration) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(at.UnixNano()),
			Member: uuid.NewString(),
		})
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("kv window add %q: %w", key, err)
	}
	return nil
}

// Ping verifies connectivity, for health checks.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
