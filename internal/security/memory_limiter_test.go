package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

func newTestLimiter(t *testing.T, maxAttempts, threshold int) *MemoryLimiter {
	t.Helper()
	m := NewMemoryLimiter(config.RateLimitConfig{
		LoginMaxAttempts:   maxAttempts,
		LoginWindowSeconds: 60,
		LockoutThreshold:   threshold,
		LockoutSeconds:     900,
		SweepSeconds:       300,
	})
	t.Cleanup(m.Stop)
	return m
}

func TestMemoryLimiterAllowWithinWindow(t *testing.T) {
	m := newTestLimiter(t, 3, 5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "ip:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i+1)
	}
	ok, err := m.Allow(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other keys are unaffected.
	ok, err = m.Allow(ctx, "ip:5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiterLockout(t *testing.T) {
	m := newTestLimiter(t, 10, 3)
	ctx := context.Background()

	locked, err := m.IsLocked(ctx, "account:a@example.com")
	require.NoError(t, err)
	assert.False(t, locked)

	for i := 0; i < 3; i++ {
		require.NoError(t, m.RecordFailure(ctx, "account:a@example.com"))
	}
	locked, err = m.IsLocked(ctx, "account:a@example.com")
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, m.Reset(ctx, "account:a@example.com"))
	locked, err = m.IsLocked(ctx, "account:a@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestMemoryLimiterDefaults(t *testing.T) {
	m := NewMemoryLimiter(config.RateLimitConfig{})
	defer m.Stop()
	assert.Equal(t, 10, m.limits.maxAttempts)
	assert.Equal(t, int64(60), m.limits.window)
	assert.Equal(t, 5, m.limits.threshold)
	assert.Equal(t, int64(900), m.limits.lockout)
}
