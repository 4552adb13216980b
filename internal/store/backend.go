package store

import "context"

// BlobKey is the fixed key under which the serialized book is persisted.
// The backend namespace holds exactly one blob for this application.
const BlobKey = "daybook/events"

// Backend is the external key-value blob collaborator the store persists
// through. Implementations must treat the blob as opaque.
//
// Get returns ok=false (with a nil error) when the key has never been
// written; that is the normal first-run state, not a failure.
type Backend interface {
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	Set(ctx context.Context, key string, blob []byte) error
}
