package blockedperiod

import (
	"context"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/webhook"
)

type DeleteBlockedPeriod struct {
	repo   schedule.BlockedPeriodRepository
	events *webhook.Dispatcher
}

func NewDeleteBlockedPeriod(
	repo schedule.BlockedPeriodRepository,
	events *webhook.Dispatcher,
) *DeleteBlockedPeriod {
	return &DeleteBlockedPeriod{
		repo:   repo,
		events: events,
	}
}

func (uc *DeleteBlockedPeriod) Execute(ctx context.Context, id uint) error {
	bp, err := uc.repo.GetBlockedPeriod(ctx, id)
	if err != nil {
		return &schedule.ReferenceError{Entity: "blocked_period", ID: id, Reason: "not found"}
	}

	if err := uc.repo.DeleteBlockedPeriod(ctx, bp.ID); err != nil {
		return err
	}

	uc.events.Dispatch(webhook.Event{
		Action:   webhook.ActionBlockedPeriodDeleted,
		Entity:   "blocked_period",
		EntityID: bp.ID,
	})

	return nil
}
