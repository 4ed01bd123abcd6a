package appointment

import (
	"context"
	"time"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/webhook"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ProviderID uint
	CustomerID uint
	ServiceID  uint

	Start time.Time
	// End may be zero for bookings; it is then derived from the service
	// duration.
	End time.Time

	Location string
	Notes    string
	Color    string

	IsUnavailability bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     schedule.Repository
	periods  schedule.BlockedPeriodStore
	users    schedule.UserDirectory
	services schedule.ServiceCatalog
	settings SettingsReader
	events   *webhook.Dispatcher
	now      func() time.Time
}

func NewCreateAppointment(
	repo schedule.Repository,
	periods schedule.BlockedPeriodStore,
	users schedule.UserDirectory,
	services schedule.ServiceCatalog,
	settings SettingsReader,
	events *webhook.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		periods:  periods,
		users:    users,
		services: services,
		settings: settings,
		events:   events,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	if err := uc.validate(ctx, &in); err != nil {
		return nil, err
	}

	if err := checkReferences(
		ctx,
		uc.users, uc.services,
		in.ProviderID, in.CustomerID, in.ServiceID,
		in.IsUnavailability,
	); err != nil {
		return nil, err
	}

	iv := schedule.NewInterval(in.Start, in.End)

	// Availability check, hash generation and the insert run as one unit
	// under the provider lock, so a racing booking for the same provider
	// re-validates against this one's committed write.
	var created *models.Appointment
	err := uc.repo.WithProviderLock(ctx, in.ProviderID, func(tx schedule.Repository) error {

		if !in.IsUnavailability {
			engine := schedule.NewAvailabilityEngine(tx, uc.periods)
			res, err := engine.CheckAvailability(ctx, in.ProviderID, in.ServiceID, iv, 0)
			if err != nil {
				return err
			}
			if !res.Available {
				return &schedule.ConflictError{Result: res}
			}
		}

		hash, err := schedule.GenerateHash(ctx, tx.HashExists)
		if err != nil {
			return err
		}

		ap := &models.Appointment{
			BookTime:         uc.now().UTC(),
			Start:            in.Start,
			End:              in.End,
			Location:         in.Location,
			Notes:            in.Notes,
			Color:            in.Color,
			Hash:             hash,
			IsUnavailability: in.IsUnavailability,
			ProviderID:       in.ProviderID,
			Status:           string(schedule.StatusNone),
		}
		if !in.IsUnavailability {
			ap.Status = string(schedule.InitialStatus())
			ap.CustomerID = &in.CustomerID
			ap.ServiceID = &in.ServiceID
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}
		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(webhook.Event{
		Action:   webhook.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: created.ID,
		Payload:  created,
	})

	return created, nil
}

func (uc *CreateAppointment) validate(ctx context.Context, in *CreateInput) error {
	if in.ProviderID == 0 {
		return &schedule.ValidationError{Field: "provider_id", Reason: "required"}
	}
	if !in.IsUnavailability {
		if in.CustomerID == 0 {
			return &schedule.ValidationError{Field: "customer_id", Reason: "required"}
		}
		if in.ServiceID == 0 {
			return &schedule.ValidationError{Field: "service_id", Reason: "required"}
		}
	}

	if in.End.IsZero() && !in.Start.IsZero() && !in.IsUnavailability {
		minutes, err := uc.services.DurationMinutes(ctx, in.ServiceID)
		if err != nil {
			return err
		}
		if minutes > 0 {
			in.End = in.Start.Add(time.Duration(minutes) * time.Minute)
		}
	}

	return validateInterval(
		schedule.NewInterval(in.Start, in.End),
		uc.settings.MinimumDuration(ctx),
	)
}
