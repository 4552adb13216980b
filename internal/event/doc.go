// Package event defines the calendar data model: the Record entry type,
// the Book mapping from date keys to record lists, and event ID generation.
//
// A Book's JSON form is also the wire format for export, import, and
// subscription feeds, so the struct tags here ARE the serialization contract:
//
//	{"2024-01-01": [{"id": 1, "title": "New year", "time": "09:00"}]}
//
// Slice order inside a date key is preserved across marshal/unmarshal
// round-trips. Time-of-day sorting is a view concern (SortedByTime), never
// a storage invariant.
package event
