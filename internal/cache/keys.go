package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ProjectsAllKey     = "projects:all"
	ArticlesVisibleKey = "articles:visible"
	TagsAllKey         = "tags:all"

	revokedTokenPrefix = "revoked:jti:%s"
)

const ListTTL = 5 * time.Minute

func RevokedTokenKey(jti string) string {
	return fmt.Sprintf(revokedTokenPrefix, jti)
}

// RevokeToken blacklists a token id until ttl elapses. Without Redis this is a no-op.
func (s *Store) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !s.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, RevokedTokenKey(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti was blacklisted by RevokeToken.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !s.Enabled() || jti == "" {
		return false, nil
	}
	err := s.client.Get(ctx, RevokedTokenKey(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
