// Package schedule derives the set of occupied calendar days for a resource
// and holds the date rules used by the conflict checks. Days are always
// compared as UTC calendar dates in YYYY-MM-DD form; time-of-day is ignored.
package schedule

import (
	"sort"
	"time"
)

const dateKeyLayout = "2006-01-02"

// Entry is one stored record as the index sees it: when it happens and
// whether it still occupies its day.
type Entry struct {
	Date      time.Time
	Cancelled bool
}

// Index is the set of occupied date keys for one resource. It is a pure
// snapshot of the records it was built from and goes stale the moment a
// record is written; callers rebuild it per request.
type Index map[string]struct{}

// DateKey normalizes a timestamp to its UTC calendar day.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key into a UTC midnight timestamp.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(dateKeyLayout, key, time.UTC)
}

// BuildIndex collects the distinct date keys of the non-cancelled entries.
func BuildIndex(entries []Entry) Index {
	idx := make(Index, len(entries))
	for _, e := range entries {
		if e.Cancelled {
			continue
		}
		idx[DateKey(e.Date)] = struct{}{}
	}
	return idx
}

// Occupied reports whether the day of t is already taken.
func (idx Index) Occupied(t time.Time) bool {
	_, ok := idx[DateKey(t)]
	return ok
}

// Keys returns the occupied date keys in ascending order.
func (idx Index) Keys() []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsPast reports whether the day of t is strictly before the day of now,
// both taken as UTC calendar days.
func IsPast(t, now time.Time) bool {
	return DateKey(t) < DateKey(now)
}
