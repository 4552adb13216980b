// Package store owns the in-memory event book and its persistence.
//
// The Store holds the whole Book and serializes every mutation behind one
// mutex: create, update, delete, and whole-book replacement each build the
// next mapping, install it, then persist it as a single opaque blob through
// the Backend. There is no partial or incremental persistence.
//
// Persistence is best-effort. A failed write is logged and the in-memory
// mutation stands; a corrupt or unreadable blob at load time is logged and
// the previous in-memory value (empty, at startup) is kept. Nothing here
// ever takes the process down over storage trouble.
package store
