package redis

import (
	"context"
	stderrors "errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/repository"
)

// DefaultPrefix namespaces keys written by the tracker.
const DefaultPrefix = "assignment-tracker:"

// Options configures the Redis-backed store.
type Options struct {
	Addr         string
	Password     string
	DB           int
	Prefix       string
	QueryTimeout time.Duration
}

// Store is a repository.KeyValueStore backed by Redis strings.
type Store struct {
	client       goredis.UniversalClient
	prefix       string
	queryTimeout time.Duration
}

var _ repository.KeyValueStore = (*Store)(nil)

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, opts Options) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	store := NewWithClient(client, opts.Prefix, opts.QueryTimeout)

	pingCtx, cancel := store.withTimeout(ctx)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.NewDatabaseError("connect to redis", err)
	}
	return store, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client goredis.UniversalClient, prefix string, queryTimeout time.Duration) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, queryTimeout: queryTimeout}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// Key returns the namespaced Redis key.
func (s *Store) Key(key string) string {
	return s.prefix + key
}

// Get implements repository.KeyValueStore.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	value, err := s.client.Get(ctx, s.Key(key)).Result()
	if stderrors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, classify(ctx, "get "+key, err)
	}
	return value, true, nil
}

// Set implements repository.KeyValueStore. Values never expire.
func (s *Store) Set(ctx context.Context, key, value string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return classify(ctx, "set "+key, err)
	}
	return nil
}

// Close implements repository.KeyValueStore.
func (s *Store) Close() error {
	return s.client.Close()
}

func classify(ctx context.Context, operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err.Error())
	}
	return errors.NewDatabaseError(operation, err)
}
