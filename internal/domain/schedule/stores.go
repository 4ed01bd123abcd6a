package schedule

import (
	"context"

	"github.com/plannora/appointments-api/internal/models"
)

// Read-side collaborator interfaces. The engine only ever reads through
// these; writes go through Repository implementations in infra.

// AppointmentStore answers overlap queries against persisted appointments.
// Implementations must apply the half-open Overlaps predicate and skip
// cancelled appointments. excludeID 0 means "exclude nothing".
type AppointmentStore interface {
	// CountOverlapping counts non-unavailability appointments for the
	// provider whose interval overlaps iv. sameService selects whether the
	// count is restricted to serviceID or to every service except it.
	CountOverlapping(ctx context.Context, providerID, serviceID uint, iv Interval, sameService bool, excludeID uint) (int, error)

	// ListOverlapping returns every non-cancelled appointment (bookings and
	// unavailability blocks alike) for the provider overlapping iv, with
	// customer and service detail attached.
	ListOverlapping(ctx context.Context, providerID uint, iv Interval, excludeID uint) ([]models.Appointment, error)

	HashExists(ctx context.Context, hash string) (bool, error)
}

// BlockedPeriodStore answers overlap queries against blocked periods.
type BlockedPeriodStore interface {
	ListOverlapping(ctx context.Context, iv Interval, excludeID uint) ([]models.BlockedPeriod, error)
}

// UserDirectory resolves user ids for existence and role validation.
type UserDirectory interface {
	Exists(ctx context.Context, id uint) (bool, error)
	HasRole(ctx context.Context, id uint, roleSlug string) (bool, error)
}

// ServiceCatalog resolves service ids. DurationMinutes backs the "derive
// end from start" convenience when a booking request omits its end.
type ServiceCatalog interface {
	Exists(ctx context.Context, id uint) (bool, error)
	AttendantsNumber(ctx context.Context, id uint) (int, error)
	DurationMinutes(ctx context.Context, id uint) (int, error)
}
