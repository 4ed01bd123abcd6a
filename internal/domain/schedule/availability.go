package schedule

import (
	"context"
	"sort"

	"github.com/plannora/appointments-api/internal/models"
)

// AvailabilityResult is the full verdict for one provider/service/interval
// combination. It maps directly onto the check-availability response body.
type AvailabilityResult struct {
	Available             bool                   `json:"available"`
	SameServiceConflicts  int                    `json:"same_service_conflicts"`
	OtherServiceConflicts int                    `json:"other_service_conflicts"`
	BlockingPeriods       []models.BlockedPeriod `json:"blocking_periods"`
}

// AvailabilityEngine is the single source of truth for "can this slot be
// booked?". It composes the capacity counter and the blocked-period index
// and never writes.
type AvailabilityEngine struct {
	capacity *CapacityCounter
	blocked  *BlockedPeriodIndex
}

func NewAvailabilityEngine(appointments AppointmentStore, periods BlockedPeriodStore) *AvailabilityEngine {
	return &AvailabilityEngine{
		capacity: NewCapacityCounter(appointments),
		blocked:  NewBlockedPeriodIndex(periods),
	}
}

// CheckAvailability computes the verdict for the slot. Available means no
// same-service conflicts, no other-service conflicts and no blocking
// periods. A service's attendants_number does not loosen the verdict; any
// overlap makes the slot unavailable.
//
// Absent data yields an available result with empty conflict detail, and
// two calls with no intervening writes yield identical results.
func (e *AvailabilityEngine) CheckAvailability(ctx context.Context, providerID, serviceID uint, iv Interval, excludeID uint) (AvailabilityResult, error) {
	var res AvailabilityResult

	same, err := e.capacity.CountSameService(ctx, providerID, serviceID, iv, excludeID)
	if err != nil {
		return res, err
	}
	other, err := e.capacity.CountOtherServices(ctx, providerID, serviceID, iv, excludeID)
	if err != nil {
		return res, err
	}
	blocking, err := e.blocked.BlockingPeriodsFor(ctx, iv)
	if err != nil {
		return res, err
	}

	res.SameServiceConflicts = same
	res.OtherServiceConflicts = other
	res.BlockingPeriods = blocking
	res.Available = same == 0 && other == 0 && len(blocking) == 0
	return res, nil
}

// ConflictingAppointments lists every appointment of the provider, any
// service, overlapping iv, sorted by start time. This is a superset of what
// the verdict counts: unavailability blocks are included so the caller can
// show the actual records occupying the window.
func (e *AvailabilityEngine) ConflictingAppointments(ctx context.Context, providerID uint, iv Interval, excludeID uint) ([]models.Appointment, error) {
	list, err := e.capacity.appointments.ListOverlapping(ctx, providerID, iv, excludeID)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Start.Before(list[j].Start)
	})
	return list, nil
}
