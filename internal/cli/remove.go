package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/daybook/internal/errmodel"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <date> <id>",
		Short: "Remove an event",
		Long: `Remove the event with the given id from a date.

Removal is idempotent: removing an id that is not present succeeds and
changes nothing.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, cmd *cobra.Command, date, idArg string) error {
	formatter := newFormatter(opts, cmd)

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fail(formatter, errmodel.Validation("invalid event id %q", idArg))
	}

	st, closeStore, err := openStore(cmd.Context(), opts)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeStore()

	st.Delete(cmd.Context(), date, id)

	return formatter.Success(
		fmt.Sprintf("removed %d from %s", id, date),
		map[string]any{"date": date, "id": id},
	)
}
