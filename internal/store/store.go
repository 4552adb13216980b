package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/roach88/daybook/internal/errmodel"
	"github.com/roach88/daybook/internal/event"
)

// Store holds the in-memory event book and persists it through a Backend.
//
// Every mutation installs a fresh Book value and then writes the whole book
// as one blob. The mutex serializes mutating operations so a merge that
// reads-then-writes the mapping can never interleave with a create or
// delete (see Apply).
type Store struct {
	mu      sync.Mutex
	backend Backend
	logger  *slog.Logger
	newID   func() int64
	book    event.Book
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for best-effort persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithIDFunc replaces the event ID generator. Tests use
// event.NewSequentialIDs for deterministic records.
func WithIDFunc(f func() int64) Option {
	return func(s *Store) { s.newID = f }
}

// New creates a Store over backend with an empty book. Call Load to
// populate it from the persisted blob.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  slog.Default(),
		newID:   event.NewID,
		book:    event.Book{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load populates the book from the persisted blob.
//
// An absent blob means "start empty". A backend read failure or a corrupt
// blob is logged and the previous in-memory value is kept: corrupt data
// must never take the session down, so load fails open.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok, err := s.backend.Get(ctx, BlobKey)
	if err != nil {
		s.logger.Error("load events: backend read failed, keeping in-memory book",
			"err", errmodel.Persistence("read persisted book", err))
		return
	}
	if !ok {
		return
	}

	var book event.Book
	if err := json.Unmarshal(blob, &book); err != nil {
		s.logger.Error("load events: corrupt blob ignored, keeping in-memory book",
			"err", errmodel.Parse("decode persisted book", err))
		return
	}
	if book == nil {
		book = event.Book{}
	}
	s.book = book
}

// Snapshot returns a deep copy of the current book.
func (s *Store) Snapshot() event.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Clone()
}

// Create appends a new record with a freshly generated ID to the
// collection at date, creating the collection if absent.
//
// Returns a validation error (and performs no save) when the title is
// empty after trimming, or when date/timeOfDay are malformed.
func (s *Store) Create(ctx context.Context, date, title, desc, timeOfDay string) (event.Record, error) {
	title = event.NormalizeText(strings.TrimSpace(title))
	if title == "" {
		return event.Record{}, errmodel.Validation("title must not be empty")
	}
	if !event.ValidDate(date) {
		return event.Record{}, errmodel.Validation("invalid date %q: want YYYY-MM-DD", date)
	}
	if !event.ValidTime(timeOfDay) {
		return event.Record{}, errmodel.Validation("invalid time %q: want HH:MM", timeOfDay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book := s.book.Clone()
	id := s.newID()
	// A fresh ID clashing with an existing record under this date is a known
	// generator edge case; regenerate rather than silently duplicating.
	for containsID(book[date], id) {
		id = s.newID()
	}
	rec := event.Record{
		ID:    id,
		Title: title,
		Desc:  event.NormalizeText(desc),
		Time:  timeOfDay,
	}
	book[date] = append(book[date], rec)

	s.book = book
	s.persist(ctx)
	return rec, nil
}

// Update replaces the title, desc, and time of the record with the given
// ID under its owning date, leaving the ID unchanged. The owning date is
// explicit: updating never moves a record between dates.
func (s *Store) Update(ctx context.Context, date string, id int64, title, desc, timeOfDay string) (event.Record, error) {
	title = event.NormalizeText(strings.TrimSpace(title))
	if title == "" {
		return event.Record{}, errmodel.Validation("title must not be empty")
	}
	if !event.ValidTime(timeOfDay) {
		return event.Record{}, errmodel.Validation("invalid time %q: want HH:MM", timeOfDay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book := s.book.Clone()
	recs := book[date]
	for i := range recs {
		if recs[i].ID != id {
			continue
		}
		recs[i].Title = title
		recs[i].Desc = event.NormalizeText(desc)
		recs[i].Time = timeOfDay
		s.book = book
		s.persist(ctx)
		return recs[i], nil
	}
	return event.Record{}, errmodel.Validation("no event with id %d on %s", id, date)
}

// Delete removes the record with the given ID from the collection at date.
// Filter-based removal is naturally idempotent: deleting an absent ID is
// not an error.
func (s *Store) Delete(ctx context.Context, date string, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, ok := s.book[date]
	if !ok {
		return
	}
	book := s.book.Clone()
	kept := recs[:0:0]
	for _, rec := range recs {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	book[date] = kept

	s.book = book
	s.persist(ctx)
}

// Replace installs book as the new in-memory mapping (full overwrite) and
// persists it. The input is deep-copied; callers keep ownership.
func (s *Store) Replace(ctx context.Context, book event.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book == nil {
		book = event.Book{}
	}
	s.book = book.Clone()
	s.persist(ctx)
}

// Apply computes the next book from the current one under the store lock
// and installs and persists the result.
//
// The reconciliation merge uses this so the local side of the merge is the
// mapping as of merge time, not a snapshot captured before the network
// fetch - a concurrent create during the fetch window cannot be lost.
func (s *Store) Apply(ctx context.Context, fn func(current event.Book) event.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.book.Clone())
	if next == nil {
		next = event.Book{}
	}
	s.book = next
	s.persist(ctx)
}

// persist writes the current book through the backend as one blob.
//
// Best-effort: a failed write is logged and the in-memory mutation
// stands. Callers must already hold s.mu.
func (s *Store) persist(ctx context.Context) {
	blob, err := json.Marshal(s.book)
	if err != nil {
		// A Book of plain strings and ints cannot fail to marshal; log and
		// move on rather than crash.
		s.logger.Error("persist events: marshal failed", "err", err)
		return
	}
	if err := s.backend.Set(ctx, BlobKey, blob); err != nil {
		s.logger.Error("persist events: write failed, in-memory book retained",
			"err", errmodel.Persistence("write persisted book", err))
	}
}

func containsID(recs []event.Record, id int64) bool {
	for _, rec := range recs {
		if rec.ID == id {
			return true
		}
	}
	return false
}
