package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/backend/internal/config"
)

// NewRedisClient creates and validates a Redis connection. Result history,
// admin sessions and live result fan-out all share this client.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (redis.UniversalClient, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{opt.Addr},
		DB:       opt.DB,
		Username: opt.Username,
		Password: opt.Password,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected")

	return rdb, nil
}
