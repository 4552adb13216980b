package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/roach88/daybook/internal/errmodel"
	"github.com/roach88/daybook/internal/event"
	"github.com/roach88/daybook/internal/store"
)

// DefaultFetchTimeout bounds the subscription fetch. The original behavior
// had no timeout at all; hanging indefinitely on a dead URL is strictly
// worse than failing.
const DefaultFetchTimeout = 10 * time.Second

// maxFetchBytes caps the subscription response body.
const maxFetchBytes = 8 << 20

// ErrDeclined is returned by Import when the confirmation gate rejects the
// overwrite. The store is left untouched.
var ErrDeclined = errors.New("import declined by user")

// Engine implements export, import-with-overwrite, and subscribe-with-merge
// over a Store.
type Engine struct {
	store   *store.Store
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithHTTPClient replaces the HTTP client used by Subscribe. Tests point
// this at httptest servers.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithFetchTimeout overrides DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger sets the logger for merge outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine over st.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   st,
		client:  &http.Client{},
		timeout: DefaultFetchTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export serializes the entire book as two-space-indented JSON, suitable
// for any delivery channel. Pure read: the store is not touched.
// Export and Import are exact inverses.
func (e *Engine) Export() ([]byte, error) {
	return exportBook(e.store.Snapshot())
}

func exportBook(book event.Book) ([]byte, error) {
	blob, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode book: %w", err)
	}
	return blob, nil
}

// Import parses blob as the wire format and, once confirm approves,
// completely replaces the store's book with the parsed value and persists
// it. Full overwrite, not a merge.
//
// A parse failure or a declined confirmation leaves the store untouched.
// A nil confirm skips the gate (callers that gather confirmation up front,
// e.g. a --yes flag).
func (e *Engine) Import(ctx context.Context, blob []byte, confirm func() bool) error {
	book, err := parseBook(blob)
	if err != nil {
		return err
	}
	if confirm != nil && !confirm() {
		return ErrDeclined
	}
	e.store.Replace(ctx, book)
	e.logger.Info("import complete", "dates", len(book))
	return nil
}

// Subscribe fetches a calendar document from url and merges it into the
// store (see Merge for the algorithm), then persists the result.
//
// The URL must be non-empty and start with "http"; anything else is a
// validation error and no network call is attempted. A transport failure,
// timeout, or non-2xx status is a fetch error; a body that is not the wire
// format is a parse error. None of those mutate the store.
func (e *Engine) Subscribe(ctx context.Context, url string) (MergeStats, error) {
	if url == "" || !strings.HasPrefix(url, "http") {
		return MergeStats{}, errmodel.Validation("subscription URL must start with http or https, got %q", url)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return MergeStats{}, errmodel.Validation("invalid subscription URL %q: %v", url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return MergeStats{}, errmodel.Fetch("fetch subscription", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return MergeStats{}, errmodel.Fetch(fmt.Sprintf("fetch subscription: server returned %s", resp.Status), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return MergeStats{}, errmodel.Fetch("read subscription body", err)
	}

	remote, err := parseBook(body)
	if err != nil {
		return MergeStats{}, err
	}

	// The local side of the merge is read under the store lock at apply
	// time, so mutations during the fetch window are merged, not lost.
	var stats MergeStats
	e.store.Apply(ctx, func(local event.Book) event.Book {
		next, s := Merge(local, remote)
		stats = s
		return next
	})

	e.logger.Info("subscription merged",
		"url", url,
		"dates_adopted", stats.DatesAdopted,
		"dates_merged", stats.DatesMerged,
		"records_added", stats.RecordsAdded,
		"records_replaced", stats.RecordsReplaced,
	)
	return stats, nil
}
