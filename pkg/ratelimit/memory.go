package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

// MemoryLimiter is an in-process Limiter. It backs the zero-config default
// deployment (no Redis configured) and deterministic tests via the
// injectable clock.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter. A nil clock defaults to
// time.Now.
func NewMemoryLimiter(clock func() time.Time) *MemoryLimiter {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		now:     clock,
	}
}

// TooManyAttempts reports whether key has reached max attempts.
func (l *MemoryLimiter) TooManyAttempts(ctx context.Context, key string, max int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.live(key)
	if entry == nil {
		return false, nil
	}
	return entry.count >= max, nil
}

// Hit increments the attempt counter for key, starting the expiry window on
// the first hit.
func (l *MemoryLimiter) Hit(ctx context.Context, key string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.live(key)
	if entry == nil {
		l.entries[key] = &memoryEntry{count: 1, expiresAt: l.now().Add(ttl)}
		return nil
	}
	entry.count++
	return nil
}

// AvailableIn returns the remaining lifetime of the window for key.
func (l *MemoryLimiter) AvailableIn(ctx context.Context, key string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.live(key)
	if entry == nil {
		return 0, nil
	}
	return entry.expiresAt.Sub(l.now()), nil
}

// live returns the entry for key, dropping it first if expired. Caller must
// hold mu.
func (l *MemoryLimiter) live(key string) *memoryEntry {
	entry, ok := l.entries[key]
	if !ok {
		return nil
	}
	if !l.now().Before(entry.expiresAt) {
		delete(l.entries, key)
		return nil
	}
	return entry
}
