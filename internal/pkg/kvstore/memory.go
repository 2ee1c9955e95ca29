// internal/pkg/kvstore/memory.go
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryAdapter is an in-process snapshot store used in tests and as a
// fallback when Redis is unavailable. Values are kept JSON-encoded so the
// round-trip behavior matches the Redis adapter.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryAdapter creates an empty in-memory snapshot store
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: map[string][]byte{}}
}

// Get retrieves and decodes a snapshot
func (a *MemoryAdapter) Get(ctx context.Context, key string, dest interface{}) error {
	a.mu.RLock()
	data, ok := a.data[key]
	a.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}

	return nil
}

// Set encodes and stores a snapshot. TTL is accepted for interface parity
// but not enforced.
func (a *MemoryAdapter) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	a.mu.Lock()
	a.data[key] = data
	a.mu.Unlock()

	return nil
}

// Delete removes a snapshot
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	delete(a.data, key)
	a.mu.Unlock()

	return nil
}

// Put seeds a raw payload under a key, bypassing JSON encoding.
// Intended for tests that simulate malformed stored state.
func (a *MemoryAdapter) Put(key string, raw []byte) {
	a.mu.Lock()
	a.data[key] = raw
	a.mu.Unlock()
}
