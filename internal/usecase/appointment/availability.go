package appointment

import (
	"context"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
)

// CheckAvailability exposes the engine verdict to the HTTP surface without
// taking any lock; the authoritative re-check happens inside the booking
// write path.
type CheckAvailability struct {
	repo    schedule.AppointmentStore
	periods schedule.BlockedPeriodStore
}

func NewCheckAvailability(
	repo schedule.AppointmentStore,
	periods schedule.BlockedPeriodStore,
) *CheckAvailability {
	return &CheckAvailability{
		repo:    repo,
		periods: periods,
	}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	providerID, serviceID uint,
	iv schedule.Interval,
	excludeID uint,
) (schedule.AvailabilityResult, error) {

	engine := schedule.NewAvailabilityEngine(uc.repo, uc.periods)
	return engine.CheckAvailability(ctx, providerID, serviceID, iv, excludeID)
}

// GetConflicts lists every appointment occupying the window, any service,
// for display next to an unavailable verdict.
type GetConflicts struct {
	repo    schedule.AppointmentStore
	periods schedule.BlockedPeriodStore
}

func NewGetConflicts(
	repo schedule.AppointmentStore,
	periods schedule.BlockedPeriodStore,
) *GetConflicts {
	return &GetConflicts{
		repo:    repo,
		periods: periods,
	}
}

func (uc *GetConflicts) Execute(
	ctx context.Context,
	providerID uint,
	iv schedule.Interval,
	excludeID uint,
) ([]models.Appointment, error) {

	engine := schedule.NewAvailabilityEngine(uc.repo, uc.periods)
	return engine.ConflictingAppointments(ctx, providerID, iv, excludeID)
}
