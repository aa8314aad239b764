package journal

import (
	"fmt"
	"time"
)

// Range is a date window. A zero Start or End leaves that side open.
// Both bounds are inclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// All is the unbounded range.
var All = Range{}

// Between returns the inclusive range [start, end].
func Between(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// Bounded reports whether at least one side is set.
func (r Range) Bounded() bool {
	return !r.Start.IsZero() || !r.End.IsZero()
}

// Contains reports whether t lies within the range. This is the single
// predicate behind both QueryRange and ClearRange, which is what makes
// the two operations partition the ledger.
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

func (r Range) String() string {
	if !r.Bounded() {
		return "all"
	}
	return fmt.Sprintf("%s .. %s", bound(r.Start), bound(r.End))
}

func bound(t time.Time) string {
	if t.IsZero() {
		return "*"
	}
	return t.Format(time.RFC3339)
}

// Filter returns the records for which keep is true, in order.
func Filter(list []TradeRecord, keep func(TradeRecord) bool) []TradeRecord {
	out := make([]TradeRecord, 0, len(list))
	for _, t := range list {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
