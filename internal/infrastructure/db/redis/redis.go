// Package redis holds the Redis-backed infrastructure: the connection
// helper and the login rate limiter that throttles repeated authentication
// attempts per identity.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for the Redis connection backing the login
// limiter.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration // ping timeout; defaults to defaultTimeout
}

// Connect initialises a Redis client and proves connectivity with a ping
// before anything depends on it. Rate limiting fails open when Redis drops
// later, but a misconfigured address should fail startup instead.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
