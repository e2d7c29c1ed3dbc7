// internal/store/memory.go
//
// In-memory implementation of the Backend interface.
// This is a lightweight persistence layer used in development/testing, or
// when durability is not required (STORE=memory).
//
// Characteristics:
//   - Stores opaque records keyed by string in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for missing keys.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Backend.Get for unknown keys.
var ErrNotFound = errors.New("store: not found")

// Backend is a keyed get/set of opaque serialized records.
// Implementations may be backed by memory (this file), SQLite, etc.
type Backend interface {
	// Get retrieves the record stored under key.
	// Returns ErrNotFound if the key is unknown.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set persists or replaces the record stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// memory is an in-memory map-based Backend implementation.
type memory struct {
	mu   sync.RWMutex      // guards recs
	recs map[string][]byte // keyed by record key
}

// NewMemory constructs a new in-memory Backend.
func NewMemory() Backend {
	return &memory{recs: make(map[string][]byte)}
}

// Set copies value into the map.
func (m *memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[key] = append([]byte(nil), value...)
	return nil
}

// Get returns a copy of the stored record.
func (m *memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.recs[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, ErrNotFound
}
