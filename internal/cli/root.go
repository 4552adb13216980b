package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/daybook/internal/reconcile"
	"github.com/roach88/daybook/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string // overrides config db path
	ConfigPath string

	// Config is populated by PersistentPreRunE before any command runs.
	Config Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the daybook CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: "Daybook - personal calendar with merge-based sync",
		Long: `A personal calendar and event manager with local persistence.

Events live in a local SQLite blob store. Export and import move the whole
book as JSON; subscribe fetches a remote JSON document and merges it in by
record ID without losing local entries.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			setupLogging(opts.Verbose)

			cfg, err := LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			opts.Config = cfg
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", DefaultConfigPath(), "path to config file")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewSubscribeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// setupLogging installs the default slog handler. Logs go to stderr so
// JSON output on stdout stays clean.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newFormatter builds the output formatter for a command.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openStore opens the SQLite backend and loads the persisted book.
// The returned closer must be deferred by the caller.
func openStore(ctx context.Context, opts *RootOptions) (*store.Store, func() error, error) {
	path := opts.Database
	if path == "" {
		path = opts.Config.Database
	}
	if path == "" {
		path = defaultDatabasePath()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	backend, err := store.OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", path, err)
	}

	st := store.New(backend, store.WithLogger(slog.Default()))
	st.Load(ctx)
	return st, backend.Close, nil
}

// newEngine builds the reconciliation engine over an open store, applying
// the configured fetch timeout.
func newEngine(opts *RootOptions, st *store.Store) (*reconcile.Engine, error) {
	timeout, err := opts.Config.fetchTimeout()
	if err != nil {
		return nil, err
	}
	return reconcile.New(st,
		reconcile.WithFetchTimeout(timeout),
		reconcile.WithLogger(slog.Default()),
	), nil
}
