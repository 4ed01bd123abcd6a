package schedule

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing or malformed field on a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ReferenceError reports a provider/customer/service id that does not exist
// or does not hold the required role.
type ReferenceError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference %d: %s", e.Entity, e.ID, e.Reason)
}

// ConflictError reports a failed availability check. It carries the full
// result so callers can show the conflicting counts and blocking periods.
type ConflictError struct {
	Result AvailabilityResult
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"slot unavailable: %d same-service, %d other-service conflicts, %d blocking periods",
		e.Result.SameServiceConflicts,
		e.Result.OtherServiceConflicts,
		len(e.Result.BlockingPeriods),
	)
}

// StateTransitionError reports an illegal lifecycle transition.
type StateTransitionError struct {
	From   Status
	Action string
}

func (e *StateTransitionError) Error() string {
	from := string(e.From)
	if from == "" {
		from = "none"
	}
	return fmt.Sprintf("cannot %s appointment in state %q", e.Action, from)
}

// ExhaustionError reports that hash generation ran out of attempts. The
// create call fails hard; the caller may retry the whole operation.
type ExhaustionError struct {
	Attempts int
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("booking hash generation exhausted after %d attempts", e.Attempts)
}
