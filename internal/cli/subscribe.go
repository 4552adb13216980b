package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/daybook/internal/errmodel"
)

// NewSubscribeCommand creates the subscribe command.
func NewSubscribeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribe [url]",
		Short: "Fetch a remote book and merge it in",
		Long: `Fetch a JSON calendar document from a URL and merge it into the
local book. Remote records replace local records with the same id on the
same date; everything else is kept. Local-only events are never deleted.

The URL defaults to subscribe_url from the config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := rootOpts.Config.SubscribeURL
			if len(args) == 1 {
				url = args[0]
			}
			return runSubscribe(rootOpts, cmd, url)
		},
	}

	return cmd
}

func runSubscribe(opts *RootOptions, cmd *cobra.Command, url string) error {
	formatter := newFormatter(opts, cmd)

	if url == "" {
		return fail(formatter, errmodel.Validation("no URL given and no subscribe_url configured"))
	}

	st, closeStore, err := openStore(cmd.Context(), opts)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeStore()

	eng, err := newEngine(opts, st)
	if err != nil {
		return fail(formatter, err)
	}

	stats, err := eng.Subscribe(cmd.Context(), url)
	if err != nil {
		return fail(formatter, err)
	}

	return formatter.Success(
		fmt.Sprintf("merged %s: %d added, %d replaced (%d new dates, %d merged dates)",
			url, stats.RecordsAdded, stats.RecordsReplaced, stats.DatesAdopted, stats.DatesMerged),
		stats,
	)
}
