package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portfolio-site/backend/internal/config"
)

// SessionRepository tracks live admin session ids so tokens can be revoked.
type SessionRepository struct {
	rdb redis.UniversalClient
}

func NewSessionRepository(rdb redis.UniversalClient) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func (r *SessionRepository) Create(ctx context.Context, jti, email string, ttl time.Duration) error {
	return r.rdb.Set(ctx, config.CacheKey.AdminSessionKey(jti), email, ttl).Err()
}

// Exists reports whether jti is a live, unrevoked session.
func (r *SessionRepository) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, config.CacheKey.AdminSessionKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *SessionRepository) Delete(ctx context.Context, jti string) error {
	return r.rdb.Del(ctx, config.CacheKey.AdminSessionKey(jti)).Err()
}
