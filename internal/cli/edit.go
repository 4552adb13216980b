package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/daybook/internal/errmodel"
	"github.com/roach88/daybook/internal/event"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Title string
	Desc  string
	Time  string
}

// NewEditCommand creates the edit command.
//
// Editing takes the event's owning date explicitly; it changes the title,
// description, or time of an event but never moves it to another date.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <date> <id>",
		Short: "Edit an event's title, description, or time",
		Long: `Edit an event in place. Fields not given keep their current value.

Example:
  daybook edit 2024-03-15 42 --time 10:00
  daybook edit 2024-03-15 42 --title "Dentist (moved)" --desc "New address"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "new title")
	cmd.Flags().StringVar(&opts.Desc, "desc", "", "new description")
	cmd.Flags().StringVar(&opts.Time, "time", "", "new time (HH:MM)")

	return cmd
}

func runEdit(opts *EditOptions, cmd *cobra.Command, date, idArg string) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fail(formatter, errmodel.Validation("invalid event id %q", idArg))
	}

	st, closeStore, err := openStore(cmd.Context(), opts.RootOptions)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeStore()

	// Start from the current record so unset flags keep their value.
	current, ok := findRecord(st.Snapshot(), date, id)
	if !ok {
		return fail(formatter, errmodel.Validation("no event with id %d on %s", id, date))
	}

	title, desc, timeOfDay := current.Title, current.Desc, current.Time
	if cmd.Flags().Changed("title") {
		title = opts.Title
	}
	if cmd.Flags().Changed("desc") {
		desc = opts.Desc
	}
	if cmd.Flags().Changed("time") {
		timeOfDay = opts.Time
	}

	rec, err := st.Update(cmd.Context(), date, id, title, desc, timeOfDay)
	if err != nil {
		return fail(formatter, err)
	}

	return formatter.Success(
		fmt.Sprintf("updated %d: %s %s %s", rec.ID, date, rec.Time, rec.Title),
		addResult{Date: date, Record: rec},
	)
}

func findRecord(book event.Book, date string, id int64) (event.Record, bool) {
	for _, rec := range book[date] {
		if rec.ID == id {
			return rec, true
		}
	}
	return event.Record{}, false
}
