package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/daybook/internal/event"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Desc string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <date> <time> <title...>",
		Short: "Add an event",
		Long: `Add an event on a date.

Example:
  daybook add 2024-03-15 09:30 "Dentist"
  daybook add 2024-03-15 18:00 Team dinner --desc "Table for six"`,
		Args:          cobra.MinimumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[2:], " ")
			return runAdd(opts, cmd, args[0], args[1], title)
		},
	}

	cmd.Flags().StringVar(&opts.Desc, "desc", "", "optional event description")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command, date, timeOfDay, title string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, closeStore, err := openStore(cmd.Context(), opts.RootOptions)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeStore()

	rec, err := st.Create(cmd.Context(), date, title, opts.Desc, timeOfDay)
	if err != nil {
		return fail(formatter, err)
	}

	return formatter.Success(
		fmt.Sprintf("added %d: %s %s %s", rec.ID, date, rec.Time, rec.Title),
		addResult{Date: date, Record: rec},
	)
}

type addResult struct {
	Date   string       `json:"date"`
	Record event.Record `json:"record"`
}
