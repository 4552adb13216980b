// Package reconcile implements the three data-exchange operations over the
// event store: export (read-only serialization), import (full overwrite
// behind a confirmation gate), and subscribe (fetch a remote document and
// union-merge it by record ID).
//
// All three speak the same wire format: a JSON object mapping ISO date keys
// to record lists. Export and import are exact inverses - importing an
// exported document reproduces the original book.
//
// The subscribe merge can only add records or overwrite them by ID; a
// record present locally but absent from the remote document is never
// deleted. Propagating deletions would need an explicit tombstone record,
// which the format does not define.
package reconcile
