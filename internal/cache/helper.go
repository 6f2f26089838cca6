package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"folio/internal/middleware"
	"folio/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first; on a miss it calls fetch (which must populate dest)
// and stores the result with ttl. Cache failures are logged and never returned.
func (s *Store) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := s.GetJSON(ctx, key, dest)
	switch {
	case err != nil:
		observability.CacheLookups.WithLabelValues(key, "error").Inc()
		middleware.Logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	case found:
		observability.CacheLookups.WithLabelValues(key, "hit").Inc()
		return nil
	default:
		observability.CacheLookups.WithLabelValues(key, "miss").Inc()
	}

	if err := fetch(); err != nil {
		return err
	}

	if err := s.SetJSON(ctx, key, dest, ttl); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}

// Invalidate deletes keys, logging rather than returning failures.
func (s *Store) Invalidate(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", slog.Any("keys", keys), slog.String("error", err.Error()))
	}
}
