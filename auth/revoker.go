package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Revoker stores revoked token ids until their natural expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "store:revoked:"

// RedisRevoker keeps the denylist in Redis with per-key TTLs.
type RedisRevoker struct {
	client *redis.Client
}

// NewRedisRevoker parses redisURL and pings the server.
func NewRedisRevoker(ctx context.Context, redisURL string) (*RedisRevoker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisRevoker{client: client}, nil
}

func (r *RedisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return r.client.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, revokedKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisRevoker) Close() error {
	return r.client.Close()
}
