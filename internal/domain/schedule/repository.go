package schedule

import (
	"context"

	"github.com/plannora/appointments-api/internal/models"
)

// Repository is the write-side contract for appointments. It extends the
// read-side AppointmentStore so the engine can re-check availability against
// the same (possibly transaction-bound) state it is about to write through.
type Repository interface {
	AppointmentStore

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	// WithProviderLock runs fn serialized against every other writer for the
	// same provider. The availability check and the subsequent write must
	// both happen inside fn so two racing bookings cannot both observe a
	// free slot. Writers for different providers do not block each other.
	WithProviderLock(ctx context.Context, providerID uint, fn func(tx Repository) error) error
}

// BlockedPeriodRepository is the write-side contract for blocked periods.
type BlockedPeriodRepository interface {
	BlockedPeriodStore

	GetBlockedPeriod(ctx context.Context, id uint) (*models.BlockedPeriod, error)
	ListBlockedPeriods(ctx context.Context) ([]models.BlockedPeriod, error)
	CreateBlockedPeriod(ctx context.Context, bp *models.BlockedPeriod) error
	UpdateBlockedPeriod(ctx context.Context, bp *models.BlockedPeriod) error
	DeleteBlockedPeriod(ctx context.Context, id uint) error

	// WithWriteLock serializes blocked-period writes against each other so
	// the no-overlap invariant survives concurrent saves. It does not block
	// appointment writers.
	WithWriteLock(ctx context.Context, fn func(tx BlockedPeriodRepository) error) error
}
