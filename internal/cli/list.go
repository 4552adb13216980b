package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/daybook/internal/errmodel"
	"github.com/roach88/daybook/internal/event"
	"github.com/roach88/daybook/internal/schedule"
)

// ListEntry is one event in list output, with the view-time expired flag.
type ListEntry struct {
	ID      int64  `json:"id"`
	Time    string `json:"time"`
	Title   string `json:"title"`
	Desc    string `json:"desc,omitempty"`
	Expired bool   `json:"expired"`
}

// ListResult is the list command's JSON payload.
type ListResult struct {
	Date   string      `json:"date"`
	Week   int         `json:"week"`
	Events []ListEntry `json:"events"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [date]",
		Short: "List the events on a date",
		Long: `List the events on a date, ordered by time of day. Events whose
time has already passed are flagged as expired. The date defaults to today.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().Format("2006-01-02")
			if len(args) == 1 {
				date = args[0]
			}
			return runList(rootOpts, cmd, date)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command, date string) error {
	formatter := newFormatter(opts, cmd)

	if !event.ValidDate(date) {
		return fail(formatter, errmodel.Validation("invalid date %q: want YYYY-MM-DD", date))
	}

	st, closeStore, err := openStore(cmd.Context(), opts)
	if err != nil {
		return fail(formatter, err)
	}
	defer closeStore()

	week, err := schedule.WeekNumberOf(date)
	if err != nil {
		return fail(formatter, err)
	}

	now := time.Now()
	recs := st.Snapshot().SortedByTime(date)
	entries := make([]ListEntry, 0, len(recs))
	for _, rec := range recs {
		expired, err := schedule.IsExpired(date, rec.Time, now)
		if err != nil {
			// A stored record with an unparseable time should still list.
			formatter.VerboseLog("event %d: %v", rec.ID, err)
		}
		entries = append(entries, ListEntry{
			ID:      rec.ID,
			Time:    rec.Time,
			Title:   rec.Title,
			Desc:    rec.Desc,
			Expired: expired,
		})
	}

	return formatter.Success(
		formatListText(date, week, entries),
		ListResult{Date: date, Week: week, Events: entries},
	)
}

func formatListText(date string, week int, entries []ListEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (week %d)", date, week)
	if len(entries) == 0 {
		b.WriteString("\n  no events")
		return b.String()
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "\n  %s  %-8d %s", e.Time, e.ID, e.Title)
		if e.Expired {
			b.WriteString("  [past]")
		}
		if e.Desc != "" {
			fmt.Fprintf(&b, "\n            %s", e.Desc)
		}
	}
	return b.String()
}
