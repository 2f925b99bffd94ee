package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = time.Minute
)

// LoginLimiter throttles login attempts per identity using a fixed window
// backed by Redis. Key format: login_attempts:<identity>
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter. Zero or negative max/window fall
// back to the defaults.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, max: int64(max), window: window}
}

// Allow records an attempt for identity and reports whether it is within
// the window's budget. The first attempt of a window starts its expiry.
func (l *LoginLimiter) Allow(ctx context.Context, identity string) (bool, error) {
	key := l.key(identity)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.max, nil
}

func (l *LoginLimiter) key(identity string) string {
	return fmt.Sprintf("login_attempts:%s", identity)
}
