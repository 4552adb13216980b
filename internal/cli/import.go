package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/daybook/internal/reconcile"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Yes bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a book, replacing all local events",
		Long: `Parse a previously exported JSON document and replace the entire
local book with it. This is a destructive overwrite, not a merge, so it
asks for confirmation unless --yes is given. Use "-" to read from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "overwrite without asking")

	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	blob, err := readImportFile(cmd, path)
	if err != nil {
		return fail(formatter, err)
	}

	st, closeStore, err := openStore(cmd.Context(), opts.RootOptions)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeStore()

	eng, err := newEngine(opts.RootOptions, st)
	if err != nil {
		return fail(formatter, err)
	}

	var confirm func() bool
	if !opts.Yes {
		confirm = func() bool {
			return promptYesNo(cmd,
				"Importing will overwrite all local events. Continue? [y/N] ")
		}
	}

	if err := eng.Import(cmd.Context(), blob, confirm); err != nil {
		if errors.Is(err, reconcile.ErrDeclined) {
			// Declining the overwrite is a normal outcome, not a failure.
			return formatter.Success("import aborted, nothing changed",
				map[string]any{"aborted": true})
		}
		return fail(formatter, err)
	}

	return formatter.Success("import complete", map[string]any{"source": path})
}

// readImportFile reads the document from a file or, for "-", from stdin.
func readImportFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		blob, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return blob, nil
	}
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return blob, nil
}

// promptYesNo asks on the command's output stream and reads one line from
// its input stream. Anything but y/yes (case-insensitive) declines.
func promptYesNo(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
