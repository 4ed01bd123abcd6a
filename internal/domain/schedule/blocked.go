package schedule

import (
	"context"
	"time"

	"github.com/plannora/appointments-api/internal/models"
)

// BlockedPeriodIndex answers how administrative blocked periods affect a
// date or interval. Read-only; the write-path overlap invariant is enforced
// through OverlapsExisting by the blocked-period use cases.
type BlockedPeriodIndex struct {
	periods BlockedPeriodStore
}

func NewBlockedPeriodIndex(periods BlockedPeriodStore) *BlockedPeriodIndex {
	return &BlockedPeriodIndex{periods: periods}
}

// IsDateTouched reports whether any blocked period intersects the calendar
// day containing date, however briefly.
func (x *BlockedPeriodIndex) IsDateTouched(ctx context.Context, date time.Time) (bool, error) {
	list, err := x.periods.ListOverlapping(ctx, DayBounds(date), 0)
	if err != nil {
		return false, err
	}
	return len(list) > 0, nil
}

// IsDateFullyBlocked reports whether some blocked period covers the entire
// day: its start at or before midnight and its end at or after 23:59:59. A
// one-hour period touches the day but does not fully block it.
func (x *BlockedPeriodIndex) IsDateFullyBlocked(ctx context.Context, date time.Time) (bool, error) {
	day := DayBounds(date)
	eod := EndOfDay(date)

	list, err := x.periods.ListOverlapping(ctx, day, 0)
	if err != nil {
		return false, err
	}
	for _, p := range list {
		if !p.Start.After(day.Start) && !p.End.Before(eod) {
			return true, nil
		}
	}
	return false, nil
}

// BlockingPeriodsFor returns every blocked period overlapping iv, used to
// explain why a slot is blocked.
func (x *BlockedPeriodIndex) BlockingPeriodsFor(ctx context.Context, iv Interval) ([]models.BlockedPeriod, error) {
	return x.periods.ListOverlapping(ctx, iv, 0)
}

// OverlapsExisting reports whether iv overlaps any existing blocked period
// other than excludeID. Used when creating or updating a blocked period to
// enforce the no-overlap invariant.
func (x *BlockedPeriodIndex) OverlapsExisting(ctx context.Context, iv Interval, excludeID uint) (bool, error) {
	list, err := x.periods.ListOverlapping(ctx, iv, excludeID)
	if err != nil {
		return false, err
	}
	return len(list) > 0, nil
}
