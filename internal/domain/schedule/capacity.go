package schedule

import "context"

// CapacityCounter counts appointments occupying a candidate slot, split by
// whether they share the candidate's service. It is read-only; absent
// provider or service ids simply yield zero counts.
type CapacityCounter struct {
	appointments AppointmentStore
}

func NewCapacityCounter(appointments AppointmentStore) *CapacityCounter {
	return &CapacityCounter{appointments: appointments}
}

// CountSameService counts bookings for the same provider and service
// overlapping iv. Pass the appointment's own id as excludeID when
// re-checking during an edit.
func (c *CapacityCounter) CountSameService(ctx context.Context, providerID, serviceID uint, iv Interval, excludeID uint) (int, error) {
	return c.appointments.CountOverlapping(ctx, providerID, serviceID, iv, true, excludeID)
}

// CountOtherServices counts bookings for the same provider overlapping iv
// under any other service.
func (c *CapacityCounter) CountOtherServices(ctx context.Context, providerID, serviceID uint, iv Interval, excludeID uint) (int, error) {
	return c.appointments.CountOverlapping(ctx, providerID, serviceID, iv, false, excludeID)
}
