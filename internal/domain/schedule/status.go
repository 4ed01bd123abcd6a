package schedule

// Status is the lifecycle state of a booking.
//
// Unavailability blocks carry StatusNone and are outside the state machine;
// all comparisons must go through the methods and Can* helpers below, never
// through raw string checks.
type Status string

const (
	StatusNone      Status = ""
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// InitialStatus is the state every new booking starts in.
func InitialStatus() Status {
	return StatusPending
}

// Applicable reports whether the state machine applies at all. It does not
// for unavailability blocks.
func (s Status) Applicable() bool {
	return s != StatusNone
}

// CountsTowardCapacity reports whether an appointment in this state occupies
// its slot. Cancelled appointments free the slot; everything else, including
// unavailability blocks, keeps it busy.
func (s Status) CountsTowardCapacity() bool {
	return s != StatusCancelled
}

// ParseStatus validates a wire value.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusNone, StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return s, nil
	}
	return StatusNone, &ValidationError{Field: "status", Reason: "unknown status " + raw}
}

// CanConfirm: pending -> confirmed.
func CanConfirm(current Status) error {
	if current != StatusPending {
		return &StateTransitionError{From: current, Action: "confirm"}
	}
	return nil
}

// CanCancel: pending|confirmed -> cancelled. Completed and cancelled
// appointments stay where they are.
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return &StateTransitionError{From: current, Action: "cancel"}
	}
	return nil
}

// CanComplete: confirmed -> completed. The time-based guard (end must have
// passed) lives in the use case, which knows the clock.
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return &StateTransitionError{From: current, Action: "complete"}
	}
	return nil
}
