package appointment

import (
	"context"
	"time"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/webhook"
)

// UpdateInput carries full replacement state for a reschedule/edit. Zero
// ids and times fall back to the stored values; the text fields are always
// replaced (PUT semantics).
type UpdateInput struct {
	ID uint

	ProviderID uint
	CustomerID uint
	ServiceID  uint

	Start time.Time
	End   time.Time

	Location string
	Notes    string
	Color    string
}

type UpdateAppointment struct {
	repo     schedule.Repository
	periods  schedule.BlockedPeriodStore
	users    schedule.UserDirectory
	services schedule.ServiceCatalog
	settings SettingsReader
	events   *webhook.Dispatcher
}

func NewUpdateAppointment(
	repo schedule.Repository,
	periods schedule.BlockedPeriodStore,
	users schedule.UserDirectory,
	services schedule.ServiceCatalog,
	settings SettingsReader,
	events *webhook.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		periods:  periods,
		users:    users,
		services: services,
		settings: settings,
		events:   events,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, &schedule.ReferenceError{Entity: "appointment", ID: in.ID, Reason: "not found"}
	}

	if in.ProviderID == 0 {
		in.ProviderID = ap.ProviderID
	}
	if !ap.IsUnavailability {
		if in.CustomerID == 0 && ap.CustomerID != nil {
			in.CustomerID = *ap.CustomerID
		}
		if in.ServiceID == 0 && ap.ServiceID != nil {
			in.ServiceID = *ap.ServiceID
		}
	}
	if in.Start.IsZero() {
		in.Start = ap.Start
	}
	if in.End.IsZero() {
		in.End = ap.End
	}

	iv := schedule.NewInterval(in.Start, in.End)
	if err := validateInterval(iv, uc.settings.MinimumDuration(ctx)); err != nil {
		return nil, err
	}
	if err := checkReferences(
		ctx,
		uc.users, uc.services,
		in.ProviderID, in.CustomerID, in.ServiceID,
		ap.IsUnavailability,
	); err != nil {
		return nil, err
	}

	// The re-check excludes the appointment's own id so an unchanged slot
	// never conflicts with itself.
	err = uc.repo.WithProviderLock(ctx, in.ProviderID, func(tx schedule.Repository) error {

		if !ap.IsUnavailability {
			engine := schedule.NewAvailabilityEngine(tx, uc.periods)
			res, err := engine.CheckAvailability(ctx, in.ProviderID, in.ServiceID, iv, ap.ID)
			if err != nil {
				return err
			}
			if !res.Available {
				return &schedule.ConflictError{Result: res}
			}
		}

		ap.ProviderID = in.ProviderID
		ap.Start = in.Start
		ap.End = in.End
		ap.Location = in.Location
		ap.Notes = in.Notes
		ap.Color = in.Color
		if !ap.IsUnavailability {
			ap.CustomerID = &in.CustomerID
			ap.ServiceID = &in.ServiceID
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(webhook.Event{
		Action:   webhook.ActionAppointmentUpdated,
		Entity:   "appointment",
		EntityID: ap.ID,
		Payload:  ap,
	})

	return ap, nil
}
