package security

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// LoginLimiter throttles login attempts and tracks consecutive failures.
// Allow is checked before credentials are verified; RecordFailure after a
// bad password; Reset after a successful login.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	IsLocked(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// limits normalizes config values once so both backends share the defaults.
type limits struct {
	maxAttempts int
	window      int64
	threshold   int
	lockout     int64
}

func limitsFromConfig(cfg config.RateLimitConfig) limits {
	l := limits{
		maxAttempts: cfg.LoginMaxAttempts,
		window:      int64(cfg.LoginWindowSeconds),
		threshold:   cfg.LockoutThreshold,
		lockout:     int64(cfg.LockoutSeconds),
	}
	if l.maxAttempts <= 0 {
		l.maxAttempts = 10
	}
	if l.window <= 0 {
		l.window = 60
	}
	if l.threshold <= 0 {
		l.threshold = 5
	}
	if l.lockout <= 0 {
		l.lockout = 900
	}
	return l
}
