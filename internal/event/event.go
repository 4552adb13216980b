package event

import (
	"regexp"
	"sort"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Record is a single calendar entry.
//
// Time is a zero-padded 24-hour "HH:MM" string with no timezone; it is
// always interpreted in the local wall-clock of whichever device evaluates
// it. Desc is optional and omitted from the wire format when empty.
type Record struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Desc  string `json:"desc,omitempty"`
	Time  string `json:"time"`
}

// Book maps ISO "YYYY-MM-DD" date keys to the records scheduled on that
// date. A key with an empty slice and an absent key are equivalent for
// display purposes.
type Book map[string][]Record

var (
	dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRE = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidDate reports whether s is a well-formed ISO date key.
// The shape check alone would accept "2024-13-40", so the candidate is also
// parsed as a real calendar date.
func ValidDate(s string) bool {
	if !dateRE.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTime reports whether s is a zero-padded 24-hour "HH:MM" string.
func ValidTime(s string) bool {
	return timeRE.MatchString(s)
}

// NormalizeText returns s in Unicode NFC form. Titles and descriptions are
// normalized on write so visually identical text compares equal across
// exports and merges.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

// Clone returns a deep copy of the book. Record slices are copied so the
// clone can be mutated without aliasing the original.
func (b Book) Clone() Book {
	out := make(Book, len(b))
	for date, recs := range b {
		cp := make([]Record, len(recs))
		copy(cp, recs)
		out[date] = cp
	}
	return out
}

// Dates returns the book's date keys in ascending order. Keys whose slice
// is empty are skipped, matching the display rule that an empty collection
// and an absent key are the same thing.
func (b Book) Dates() []string {
	dates := make([]string, 0, len(b))
	for date, recs := range b {
		if len(recs) == 0 {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// SortedByTime returns a copy of the records under date ordered by their
// Time field. "HH:MM" strings order correctly under plain lexicographic
// comparison. The sort is stable so records sharing a time keep their
// stored order.
func (b Book) SortedByTime(date string) []Record {
	recs := b[date]
	out := make([]Record, len(recs))
	copy(out, recs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}
