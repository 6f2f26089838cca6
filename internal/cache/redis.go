// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"folio/internal/middleware"

	"github.com/redis/go-redis/v9"
)

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// Store wraps the Redis client. A Store without a client is valid: reads miss,
// writes are dropped and revocation checks report nothing revoked.
type Store struct {
	client *redis.Client
}

// NewStore wraps an existing client and instruments it.
func NewStore(client *redis.Client) *Store {
	if client != nil {
		client.AddHook(metricsHook{})
	}
	return &Store{client: client}
}

// Connect dials Redis at addr (host:port or redis:// URL). When Redis is
// unreachable the returned Store runs without a client.
func Connect(addr string) *Store {
	if strings.TrimSpace(addr) == "" {
		middleware.Logger.Warn("Redis address not configured (continuing without cache)")
		return &Store{}
	}

	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			middleware.Logger.Warn("Redis connection warning: invalid REDIS_URL (continuing without cache)",
				slog.String("error", err.Error()))
			return &Store{}
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis connection warning (continuing without cache)", slog.String("error", err.Error()))
		_ = client.Close()
		return &Store{}
	}
	middleware.Logger.Info("Redis connected successfully")
	return NewStore(client)
}

// Client returns the underlying client, or nil when running without Redis.
func (s *Store) Client() *redis.Client {
	if s == nil {
		return nil
	}
	return s.client
}

// Enabled reports whether a Redis client is attached.
func (s *Store) Enabled() bool {
	return s.Client() != nil
}

// Ping checks Redis. A Store without a client is reported as an error.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return errors.New("redis not configured")
	}
	return s.client.Ping(ctx).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}
