package security

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

type windowCounter struct {
	count       int
	windowStart time.Time
}

type failureRecord struct {
	count    int
	lastSeen time.Time
}

// MemoryLimiter keeps login counters in process-local maps swept on a timer.
// Not safe across multiple instances; multi-instance deployments should use
// the Redis backend instead.
type MemoryLimiter struct {
	mu       sync.Mutex
	limits   limits
	attempts map[string]*windowCounter
	failures map[string]*failureRecord
	done     chan struct{}
	stopOnce sync.Once
}

// NewMemoryLimiter builds the limiter and starts the sweep goroutine.
func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	m := &MemoryLimiter{
		limits:   limitsFromConfig(cfg),
		attempts: make(map[string]*windowCounter),
		failures: make(map[string]*failureRecord),
		done:     make(chan struct{}),
	}

	sweep := time.Duration(cfg.SweepSeconds) * time.Second
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	go m.sweepLoop(sweep)
	return m
}

// Allow counts one attempt against the fixed window for key.
func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	counter, ok := m.attempts[key]
	if !ok || now.Sub(counter.windowStart) >= time.Duration(m.limits.window)*time.Second {
		m.attempts[key] = &windowCounter{count: 1, windowStart: now}
		return true, nil
	}
	counter.count++
	return counter.count <= m.limits.maxAttempts, nil
}

// RecordFailure increments the consecutive-failure counter for key.
func (m *MemoryLimiter) RecordFailure(_ context.Context, key string) error {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.failures[key]
	if !ok || now.Sub(record.lastSeen) >= time.Duration(m.limits.lockout)*time.Second {
		m.failures[key] = &failureRecord{count: 1, lastSeen: now}
		return nil
	}
	record.count++
	record.lastSeen = now
	return nil
}

// IsLocked reports whether key has hit the failure threshold within the lockout window.
func (m *MemoryLimiter) IsLocked(_ context.Context, key string) (bool, error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.failures[key]
	if !ok {
		return false, nil
	}
	if now.Sub(record.lastSeen) >= time.Duration(m.limits.lockout)*time.Second {
		delete(m.failures, key)
		return false, nil
	}
	return record.count >= m.limits.threshold, nil
}

// Reset clears failure tracking for key.
func (m *MemoryLimiter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, key)
	return nil
}

// Stop terminates the sweep goroutine.
func (m *MemoryLimiter) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

func (m *MemoryLimiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.sweep(now)
		}
	}
}

func (m *MemoryLimiter) sweep(now time.Time) {
	window := time.Duration(m.limits.window) * time.Second
	lockout := time.Duration(m.limits.lockout) * time.Second

	m.mu.Lock()
	defer m.mu.Unlock()
	for key, counter := range m.attempts {
		if now.Sub(counter.windowStart) >= window {
			delete(m.attempts, key)
		}
	}
	for key, record := range m.failures {
		if now.Sub(record.lastSeen) >= lockout {
			delete(m.failures, key)
		}
	}
}
