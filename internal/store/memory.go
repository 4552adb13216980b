package store

import (
	"context"
	"sync"
)

// MemoryBackend is an in-process Backend for tests.
//
// It records every Set so tests can assert exactly when saves occur and
// with what payload, and it can be made to fail writes on demand to
// exercise the best-effort persistence path.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type MemoryBackend struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	sets   [][]byte // payload of every Set, in order
	setErr error    // when non-nil, Set fails with this error
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[string][]byte)}
}

// Get returns the blob stored under key, or ok=false if absent.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(blob))
	copy(cp, blob)
	return cp, true, nil
}

// Set stores blob under key, or fails if FailWrites was set.
// The payload is recorded either way so tests can observe the attempt.
func (m *MemoryBackend) Set(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	m.sets = append(m.sets, cp)
	if m.setErr != nil {
		return m.setErr
	}
	m.blobs[key] = cp
	return nil
}

// Seed stores blob under key directly, bypassing Set recording.
// Used to arrange pre-existing state in tests.
func (m *MemoryBackend) Seed(key string, blob []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = blob
}

// FailWrites makes every subsequent Set return err (nil restores success).
func (m *MemoryBackend) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErr = err
}

// Sets returns the payloads of all Set calls so far, in order.
func (m *MemoryBackend) Sets() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.sets))
	copy(out, m.sets)
	return out
}
