package ctftime

import (
	"fmt"
	"time"
)

// Window is the bounded time range a fetch covers: events starting between
// Start and End (inclusive) are relevant to the current run.
type Window struct {
	Start time.Time
	End   time.Time

	// days is the configured lookahead the window was built with. AddDate
	// spans a DST transition with an hour more or less of wall time, so
	// the bounds alone cannot reproduce it.
	days int
}

// NewWindow builds a window covering the given number of days from now.
func NewWindow(now time.Time, days int) Window {
	return Window{
		Start: now,
		End:   now.AddDate(0, 0, days),
		days:  days,
	}
}

// Validate checks the window is well-formed.
func (w Window) Validate() error {
	if w.End.Before(w.Start) {
		return fmt.Errorf("window end %s is before start %s",
			w.End.Format(time.RFC3339), w.Start.Format(time.RFC3339))
	}
	return nil
}

// Contains reports whether t falls within [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the lookahead the window was built with. For hand-built
// windows it falls back to the span in whole days, rounded up.
func (w Window) Days() int {
	if w.days > 0 {
		return w.days
	}
	return int((w.End.Sub(w.Start) + 24*time.Hour - 1) / (24 * time.Hour))
}
