package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
)

// SettingsReader supplies the configurable booking rules.
type SettingsReader interface {
	MinimumDuration(ctx context.Context) time.Duration
}

func validateInterval(iv schedule.Interval, min time.Duration) error {
	if iv.Start.IsZero() {
		return &schedule.ValidationError{Field: "start", Reason: "required"}
	}
	if iv.End.IsZero() {
		return &schedule.ValidationError{Field: "end", Reason: "required"}
	}
	if !iv.Valid() {
		return &schedule.ValidationError{Field: "end", Reason: "must be after start"}
	}
	if iv.Duration() < min {
		return &schedule.ValidationError{
			Field:  "end",
			Reason: fmt.Sprintf("duration below the configured minimum of %s", min),
		}
	}
	return nil
}

// checkReferences enforces that referenced ids exist and hold the role the
// appointment kind demands. Customer and service are skipped for
// unavailability blocks.
func checkReferences(
	ctx context.Context,
	users schedule.UserDirectory,
	services schedule.ServiceCatalog,
	providerID, customerID, serviceID uint,
	isUnavailability bool,
) error {

	ok, err := users.HasRole(ctx, providerID, models.RoleProvider)
	if err != nil {
		return err
	}
	if !ok {
		return &schedule.ReferenceError{
			Entity: "provider",
			ID:     providerID,
			Reason: "must exist and hold the provider role",
		}
	}

	if isUnavailability {
		return nil
	}

	ok, err = users.HasRole(ctx, customerID, models.RoleCustomer)
	if err != nil {
		return err
	}
	if !ok {
		return &schedule.ReferenceError{
			Entity: "customer",
			ID:     customerID,
			Reason: "must exist and hold the customer role",
		}
	}

	ok, err = services.Exists(ctx, serviceID)
	if err != nil {
		return err
	}
	if !ok {
		return &schedule.ReferenceError{
			Entity: "service",
			ID:     serviceID,
			Reason: "does not exist",
		}
	}
	return nil
}
