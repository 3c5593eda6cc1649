package store

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/vvka-141/kvload/internal/retry"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// RedisStore writes entries with SET into Redis or KeyDB.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. The store owns the client and
// closes it on Close.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("client cannot be nil")
	}
	return &RedisStore{client: client}
}

// RedisOptions parses a redis://, rediss:// or unix:// URL.
// $REDIS_PASSWORD is used when the URL carries no password. The client's own
// command retries are disabled so a rejected write is reported, not repeated.
func RedisOptions(rawURL string) (*redis.Options, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL %s: %v: %w", Redact(rawURL), err, kvload.ErrInvalidConfig)
	}
	if opts.Password == "" {
		opts.Password = os.Getenv("REDIS_PASSWORD")
	}
	opts.MaxRetries = -1
	return opts, nil
}

func openRedis(ctx context.Context, rawURL string, executor *retry.Executor) (*RedisStore, error) {
	opts, err := RedisOptions(rawURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	err = executor.Execute(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		client.Close()
		return nil, wrapConnectionError(err, "Redis", opts.Addr)
	}

	return NewRedisStore(client), nil
}

// Set issues SET key value without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: SET %q: %w", kvload.ErrStoreWrite, key, err)
	}
	return nil
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
