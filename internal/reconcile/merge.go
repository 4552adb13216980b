package reconcile

import "github.com/roach88/daybook/internal/event"

// MergeStats summarizes what a merge changed.
type MergeStats struct {
	DatesAdopted    int `json:"dates_adopted"`    // remote-only date keys adopted verbatim
	DatesMerged     int `json:"dates_merged"`     // date keys combined record-by-record
	RecordsAdded    int `json:"records_added"`    // remote records with no matching local ID
	RecordsReplaced int `json:"records_replaced"` // local records replaced by a same-ID remote record
}

// Merge applies the remote document to local, per date key present in
// remote:
//
//  1. A date key local has no collection for adopts the remote collection
//     verbatim.
//  2. A shared date key drops every local record whose ID appears in the
//     remote collection - remote records are authoritative replacements
//     for matching IDs - then appends the remote collection after the
//     surviving locals.
//  3. Date keys present only locally are left untouched.
//
// Merge is a pure function of its inputs; neither argument is mutated.
// Applying the same remote document twice yields the same result as
// applying it once.
func Merge(local, remote event.Book) (event.Book, MergeStats) {
	next := local.Clone()
	var stats MergeStats

	for date, remoteRecs := range remote {
		localRecs, ok := next[date]
		if !ok {
			next[date] = append([]event.Record(nil), remoteRecs...)
			stats.DatesAdopted++
			stats.RecordsAdded += len(remoteRecs)
			continue
		}

		remoteIDs := make(map[int64]struct{}, len(remoteRecs))
		for _, rec := range remoteRecs {
			remoteIDs[rec.ID] = struct{}{}
		}

		kept := localRecs[:0:0]
		for _, rec := range localRecs {
			if _, stale := remoteIDs[rec.ID]; !stale {
				kept = append(kept, rec)
			}
		}

		replaced := len(localRecs) - len(kept)
		next[date] = append(kept, remoteRecs...)
		stats.DatesMerged++
		stats.RecordsReplaced += replaced
		stats.RecordsAdded += len(remoteRecs) - replaced
	}

	return next, stats
}
