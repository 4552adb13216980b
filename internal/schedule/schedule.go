// Package schedule provides pure date/time helpers consumed by presentation
// code. The semantics are easy to get subtly wrong, so they live here with
// tests rather than inline at call sites.
package schedule

import (
	"fmt"
	"time"
)

// IsExpired reports whether the local wall-clock instant formed from date
// ("YYYY-MM-DD") and timeOfDay ("HH:MM", seconds truncated to zero) is
// strictly before now.
//
// "now" is an explicit parameter: callers in a live view pass time.Now()
// on every render, tests pass a fixed instant.
func IsExpired(date, timeOfDay string, now time.Time) (bool, error) {
	target, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, now.Location())
	if err != nil {
		return false, fmt.Errorf("parse event instant: %w", err)
	}
	return target.Before(now), nil
}

// WeekNumber returns the ISO-8601 week number of t.
//
// The week is identified by shifting t to the Thursday of its Monday-based
// week (Monday=1 .. Sunday=7); that Thursday's ordinal day within its own
// year gives the 1-based week index. This yields the standard year-boundary
// behavior: early January days can belong to the previous year's final
// week, and late December days to week 1 of the next year.
func WeekNumber(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday is day 7 in ISO numbering
	}
	thursday := t.AddDate(0, 0, 4-wd)
	return (thursday.YearDay()-1)/7 + 1
}

// WeekNumberOf is WeekNumber for an ISO "YYYY-MM-DD" date key.
func WeekNumberOf(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("parse date: %w", err)
	}
	return WeekNumber(t), nil
}
