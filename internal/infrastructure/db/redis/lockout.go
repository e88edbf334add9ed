package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockoutKeyPrefix = "lockout:"

	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginLockout counts failed login attempts per email in Redis.
// Key format: lockout:<lowercased email>, expiring after the window.
type LoginLockout struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginLockout creates a LoginLockout allowing maxAttempts failures per
// window before reporting a lockout.
func NewLoginLockout(client *redis.Client, maxAttempts int, window time.Duration) *LoginLockout {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLockout{client: client, max: maxAttempts, window: window}
}

// TooManyFailures reports whether email has reached the failure limit.
func (l *LoginLockout) TooManyFailures(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lockout check: %w", err)
	}
	return n >= l.max, nil
}

// RecordFailure increments the failure counter; the first failure in a
// window starts the expiry clock.
func (l *LoginLockout) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("lockout incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("lockout expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLockout) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("lockout reset: %w", err)
	}
	return nil
}

func (l *LoginLockout) key(email string) string {
	return lockoutKeyPrefix + strings.ToLower(email)
}
