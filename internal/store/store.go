package store

import (
	"context"
	"errors"
	"fmt"

	"e2mcheck/internal/config"
	"e2mcheck/pkg/logging"

	"github.com/redis/go-redis/v9"
)

const subsystem = "Store"

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Store wraps a Redis client with the handful of plain string commands the
// helpers need. Every call blocks until Redis answers or ctx ends.
type Store struct {
	client *redis.Client
}

// New creates a Store for the configured Redis instance. No connection is
// made until the first command.
func New(cfg config.StoreConfig) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:        cfg.Addr(),
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	}))
}

// NewWithClient wraps an existing go-redis client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Addr returns the address of the Redis server.
func (s *Store) Addr() string {
	return s.client.Options().Addr
}

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach store at %s: %w", s.Addr(), err)
	}
	return nil
}

// Get returns the value stored at key. A missing key yields ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logging.Debug(subsystem, "GET %s: not found", key)
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	logging.Debug(subsystem, "GET %s: %d bytes", key, len(value))
	return value, nil
}

// Set stores value at key without expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	logging.Debug(subsystem, "SET %s", key)
	return nil
}

// Exists reports whether key exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", key, err)
	}
	return n > 0, nil
}

// FlushAll removes every key in every database of the server.
func (s *Store) FlushAll(ctx context.Context) error {
	if err := s.client.FlushAll(ctx).Err(); err != nil {
		return fmt.Errorf("failed to flush store at %s: %w", s.Addr(), err)
	}
	logging.Info(subsystem, "Flushed all keys at %s", s.Addr())
	return nil
}

// Subscribe subscribes to the given channels and waits for the server to
// confirm. The caller owns the returned PubSub and must close it.
func (s *Store) Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error) {
	pubsub := s.client.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %v: %w", channels, err)
	}
	return pubsub, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
