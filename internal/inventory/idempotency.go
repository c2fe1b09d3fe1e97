package inventory

import (
	"context"
	"sync"
	"time"
)

// IdempotencyRegistry remembers sale attempt keys so a retried attempt does
// not deduct stock twice. The Redis-backed implementation lives in
// internal/redisclient; this package provides an in-process fallback.
type IdempotencyRegistry interface {
	Seen(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string, ttl time.Duration) error
}

// MemoryRegistry is an in-process IdempotencyRegistry for tests and
// Redis-less runs. Entries expire lazily on lookup.
type MemoryRegistry struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

// NewMemoryRegistry creates an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{keys: make(map[string]time.Time)}
}

// Seen reports whether the key was marked and has not expired.
func (r *MemoryRegistry) Seen(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiry, ok := r.keys[key]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(r.keys, key)
		return false, nil
	}
	return true, nil
}

// Mark records the key until ttl elapses.
func (r *MemoryRegistry) Mark(_ context.Context, key string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[key] = time.Now().Add(ttl)
	return nil
}
