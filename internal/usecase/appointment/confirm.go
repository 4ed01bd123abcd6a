package appointment

import (
	"context"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/webhook"
)

type ConfirmAppointment struct {
	repo   schedule.Repository
	events *webhook.Dispatcher
}

func NewConfirmAppointment(
	repo schedule.Repository,
	events *webhook.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:   repo,
		events: events,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, &schedule.ReferenceError{Entity: "appointment", ID: id, Reason: "not found"}
	}

	if err := schedule.CanConfirm(schedule.Status(ap.Status)); err != nil {
		return nil, err
	}
	ap.Status = string(schedule.StatusConfirmed)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(webhook.Event{
		Action:   webhook.ActionAppointmentConfirmed,
		Entity:   "appointment",
		EntityID: ap.ID,
		Payload:  ap,
	})

	return ap, nil
}
