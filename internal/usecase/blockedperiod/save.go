package blockedperiod

import (
	"context"
	"time"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
	"github.com/plannora/appointments-api/internal/webhook"
)

// SaveInput creates a blocked period when ID is zero and updates it
// otherwise.
type SaveInput struct {
	ID    uint
	Name  string
	Start time.Time
	End   time.Time
	Notes string
}

type SaveBlockedPeriod struct {
	repo   schedule.BlockedPeriodRepository
	events *webhook.Dispatcher
}

func NewSaveBlockedPeriod(
	repo schedule.BlockedPeriodRepository,
	events *webhook.Dispatcher,
) *SaveBlockedPeriod {
	return &SaveBlockedPeriod{
		repo:   repo,
		events: events,
	}
}

func (uc *SaveBlockedPeriod) Execute(
	ctx context.Context,
	in SaveInput,
) (*models.BlockedPeriod, error) {

	if in.Name == "" {
		return nil, &schedule.ValidationError{Field: "name", Reason: "required"}
	}
	iv := schedule.NewInterval(in.Start, in.End)
	if !iv.Valid() {
		return nil, &schedule.ValidationError{Field: "end", Reason: "must be after start"}
	}

	// The overlap check and the write run under one lock so two racing
	// saves cannot both pass the no-overlap invariant.
	var saved *models.BlockedPeriod
	err := uc.repo.WithWriteLock(ctx, func(tx schedule.BlockedPeriodRepository) error {

		existing, err := tx.ListOverlapping(ctx, iv, in.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return &schedule.ConflictError{Result: schedule.AvailabilityResult{
				BlockingPeriods: existing,
			}}
		}

		if in.ID == 0 {
			bp := &models.BlockedPeriod{
				Name:  in.Name,
				Start: in.Start,
				End:   in.End,
				Notes: in.Notes,
			}
			if err := tx.CreateBlockedPeriod(ctx, bp); err != nil {
				return err
			}
			saved = bp
			return nil
		}

		bp, err := tx.GetBlockedPeriod(ctx, in.ID)
		if err != nil {
			return &schedule.ReferenceError{Entity: "blocked_period", ID: in.ID, Reason: "not found"}
		}
		bp.Name = in.Name
		bp.Start = in.Start
		bp.End = in.End
		bp.Notes = in.Notes
		if err := tx.UpdateBlockedPeriod(ctx, bp); err != nil {
			return err
		}
		saved = bp
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(webhook.Event{
		Action:   webhook.ActionBlockedPeriodSaved,
		Entity:   "blocked_period",
		EntityID: saved.ID,
		Payload:  saved,
	})

	return saved, nil
}
