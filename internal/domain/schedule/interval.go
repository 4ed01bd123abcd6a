package schedule

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Valid reports whether the interval is non-empty (End strictly after Start).
func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps is the single overlap predicate for the whole system. Every
// conflict check (appointment vs appointment, appointment vs blocked period,
// blocked period vs blocked period) reduces to this comparison.
//
// Half-open semantics: an interval ending exactly when another starts does
// not overlap it.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// DayBounds returns the [midnight, next midnight) interval of the calendar
// day containing t, in t's location.
func DayBounds(t time.Time) Interval {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// EndOfDay returns 23:59:59 of the calendar day containing t.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
