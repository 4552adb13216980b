package event

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

// NewID returns a time-ordered, collision-resistant event ID.
//
// The value is the top 63 bits of a UUIDv7: a 48-bit millisecond timestamp
// followed by random bits. IDs therefore sort by creation time like the
// original millisecond-counter scheme, but two records created within the
// same millisecond still receive distinct IDs.
func NewID() int64 {
	u := uuid.Must(uuid.NewV7())
	return int64(binary.BigEndian.Uint64(u[:8]) >> 1)
}

// SequentialIDs returns predetermined IDs for testing, starting at start
// and counting up.
//
// This enables deterministic fixtures and golden comparisons: tests know
// exactly which ID each created record receives.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu   sync.Mutex
	next int64
}

// NewSequentialIDs creates a generator whose first ID is start.
func NewSequentialIDs(start int64) *SequentialIDs {
	return &SequentialIDs{next: start}
}

// NextID returns the next ID in the sequence.
func (g *SequentialIDs) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next
	g.next++
	return id
}
