package appointment

import (
	"context"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/webhook"
)

type DeleteAppointment struct {
	repo   schedule.Repository
	events *webhook.Dispatcher
}

func NewDeleteAppointment(
	repo schedule.Repository,
	events *webhook.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:   repo,
		events: events,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return &schedule.ReferenceError{Entity: "appointment", ID: id, Reason: "not found"}
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return err
	}

	uc.events.Dispatch(webhook.Event{
		Action:   webhook.ActionAppointmentDeleted,
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return nil
}
