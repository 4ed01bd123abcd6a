package appointment

import (
	"context"
	"time"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/webhook"
)

type CompleteAppointment struct {
	repo   schedule.Repository
	events *webhook.Dispatcher
	now    func() time.Time
}

func NewCompleteAppointment(
	repo schedule.Repository,
	events *webhook.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, &schedule.ReferenceError{Entity: "appointment", ID: id, Reason: "not found"}
	}

	if err := schedule.CanComplete(schedule.Status(ap.Status)); err != nil {
		return nil, err
	}

	// A booking only completes once its end time has passed.
	if uc.now().Before(ap.End) {
		return nil, &schedule.StateTransitionError{
			From:   schedule.Status(ap.Status),
			Action: "complete before end time",
		}
	}
	ap.Status = string(schedule.StatusCompleted)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(webhook.Event{
		Action:   webhook.ActionAppointmentCompleted,
		Entity:   "appointment",
		EntityID: ap.ID,
		Payload:  ap,
	})

	return ap, nil
}
