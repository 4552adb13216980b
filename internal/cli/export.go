package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole book as JSON",
		Long: `Serialize every event to JSON, suitable for backup or for serving
as a subscription feed. Writes to stdout unless -o is given. Export is a
pure read; importing its output reproduces the book exactly.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, closeStore, err := openStore(cmd.Context(), opts.RootOptions)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeStore()

	eng, err := newEngine(opts.RootOptions, st)
	if err != nil {
		return fail(formatter, err)
	}

	blob, err := eng.Export()
	if err != nil {
		return fail(formatter, err)
	}

	if opts.Output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(blob))
		return nil
	}

	if err := os.WriteFile(opts.Output, append(blob, '\n'), 0o644); err != nil {
		return fail(formatter, fmt.Errorf("write export: %w", err))
	}
	return formatter.Success(
		fmt.Sprintf("exported to %s", opts.Output),
		map[string]any{"path": opts.Output, "bytes": len(blob)},
	)
}
