package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

// rangeFlags are the --from/--to pair shared by the query commands.
type rangeFlags struct {
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start date, inclusive (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date, inclusive (YYYY-MM-DD or RFC3339)")
}

// Range converts the flags to a journal.Range. A bare date for --to
// covers that whole day.
func (f *rangeFlags) Range() (journal.Range, error) {
	var r journal.Range
	if f.from != "" {
		start, _, err := parseBound(time.Local, f.from)
		if err != nil {
			return r, fmt.Errorf("--from: %w", err)
		}
		r.Start = start
	}
	if f.to != "" {
		_, end, err := parseBound(time.Local, f.to)
		if err != nil {
			return r, fmt.Errorf("--to: %w", err)
		}
		r.End = end
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return r, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}
	return r, nil
}

// parseBound returns the first and last instant named by s. A timestamp
// names a single instant; a date names the whole day in loc.
func parseBound(loc *time.Location, s string) (time.Time, time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, t, nil
	}
	start, end, err := dayBounds(loc, s)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("want YYYY-MM-DD or RFC3339, got %q", s)
	}
	return start, end.Add(-time.Nanosecond), nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
