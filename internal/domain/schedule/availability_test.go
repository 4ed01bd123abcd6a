package schedule

import (
	"context"
	"reflect"
	"testing"

	"github.com/plannora/appointments-api/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func newEngine(store *memoryStore) *AvailabilityEngine {
	return NewAvailabilityEngine(store, periodStore{store})
}

func TestCheckAvailabilityEmptyStore(t *testing.T) {
	store := newMemoryStore()
	engine := newEngine(store)

	res, err := engine.CheckAvailability(context.Background(), 1, 1, iv(t, "2024-03-01T09:00:00Z", "2024-03-01T10:00:00Z"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Available || res.SameServiceConflicts != 0 || res.OtherServiceConflicts != 0 || len(res.BlockingPeriods) != 0 {
		t.Errorf("empty store must be available, got %+v", res)
	}
}

// The concrete scenario: provider 1 holds a confirmed 09:00-10:00 booking
// for service A. An overlapping request is rejected with one same-service
// conflict; a touching request succeeds.
func TestCheckAvailabilityScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	engine := newEngine(store)

	store.addAppointment(models.Appointment{
		ProviderID: 1,
		ServiceID:  uintPtr(7),
		CustomerID: uintPtr(3),
		Start:      mustParse(t, "2024-03-01T09:00:00Z"),
		End:        mustParse(t, "2024-03-01T10:00:00Z"),
		Status:     string(StatusConfirmed),
	})

	overlapping := iv(t, "2024-03-01T09:30:00Z", "2024-03-01T10:30:00Z")
	res, err := engine.CheckAvailability(ctx, 1, 7, overlapping, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Available {
		t.Error("overlapping slot must be unavailable")
	}
	if res.SameServiceConflicts != 1 || res.OtherServiceConflicts != 0 {
		t.Errorf("conflicts = %d/%d, want 1/0", res.SameServiceConflicts, res.OtherServiceConflicts)
	}

	touching := iv(t, "2024-03-01T10:00:00Z", "2024-03-01T11:00:00Z")
	res, err = engine.CheckAvailability(ctx, 1, 7, touching, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Available {
		t.Errorf("touching slot must be available, got %+v", res)
	}
}

func TestCheckAvailabilityOtherServiceConflict(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	engine := newEngine(store)

	store.addAppointment(models.Appointment{
		ProviderID: 1,
		ServiceID:  uintPtr(9),
		CustomerID: uintPtr(3),
		Start:      mustParse(t, "2024-03-01T09:00:00Z"),
		End:        mustParse(t, "2024-03-01T10:00:00Z"),
		Status:     string(StatusPending),
	})

	res, err := engine.CheckAvailability(ctx, 1, 7, iv(t, "2024-03-01T09:30:00Z", "2024-03-01T10:30:00Z"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Available || res.SameServiceConflicts != 0 || res.OtherServiceConflicts != 1 {
		t.Errorf("expected one other-service conflict, got %+v", res)
	}
}

func TestCheckAvailabilityIgnoresCancelledAndExcluded(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	engine := newEngine(store)

	slot := iv(t, "2024-03-01T09:00:00Z", "2024-03-01T10:00:00Z")

	store.addAppointment(models.Appointment{
		ProviderID: 1,
		ServiceID:  uintPtr(7),
		CustomerID: uintPtr(3),
		Start:      slot.Start,
		End:        slot.End,
		Status:     string(StatusCancelled),
	})
	id := store.addAppointment(models.Appointment{
		ProviderID: 1,
		ServiceID:  uintPtr(7),
		CustomerID: uintPtr(4),
		Start:      slot.Start,
		End:        slot.End,
		Status:     string(StatusPending),
	})

	res, _ := engine.CheckAvailability(ctx, 1, 7, slot, 0)
	if res.SameServiceConflicts != 1 {
		t.Errorf("cancelled appointment counted: %+v", res)
	}

	// Editing the pending appointment: excluding itself clears the slot.
	res, _ = engine.CheckAvailability(ctx, 1, 7, slot, id)
	if !res.Available {
		t.Errorf("exclusion of own id must free the slot, got %+v", res)
	}
}

func TestCheckAvailabilityBlockedPeriod(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	engine := newEngine(store)

	store.addPeriod(models.BlockedPeriod{
		Name:  "holiday",
		Start: mustParse(t, "2024-03-01T00:00:00Z"),
		End:   mustParse(t, "2024-03-02T00:00:00Z"),
	})

	res, err := engine.CheckAvailability(ctx, 1, 7, iv(t, "2024-03-01T09:00:00Z", "2024-03-01T10:00:00Z"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Available {
		t.Error("blocked slot must be unavailable")
	}
	if len(res.BlockingPeriods) != 1 || res.BlockingPeriods[0].Name != "holiday" {
		t.Errorf("blocking periods = %+v", res.BlockingPeriods)
	}
}

func TestCheckAvailabilityIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	engine := newEngine(store)

	store.addAppointment(models.Appointment{
		ProviderID: 1,
		ServiceID:  uintPtr(7),
		CustomerID: uintPtr(3),
		Start:      mustParse(t, "2024-03-01T09:00:00Z"),
		End:        mustParse(t, "2024-03-01T10:00:00Z"),
		Status:     string(StatusConfirmed),
	})

	slot := iv(t, "2024-03-01T09:15:00Z", "2024-03-01T09:45:00Z")
	first, err := engine.CheckAvailability(ctx, 1, 7, slot, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.CheckAvailability(ctx, 1, 7, slot, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ with no intervening writes: %+v vs %+v", first, second)
	}
}

func TestConflictingAppointmentsSortedSuperset(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	engine := newEngine(store)

	// An unavailability block and a booking, inserted out of order.
	store.addAppointment(models.Appointment{
		ProviderID: 1,
		ServiceID:  uintPtr(9),
		CustomerID: uintPtr(3),
		Start:      mustParse(t, "2024-03-01T11:00:00Z"),
		End:        mustParse(t, "2024-03-01T12:00:00Z"),
		Status:     string(StatusConfirmed),
	})
	store.addAppointment(models.Appointment{
		ProviderID:       1,
		IsUnavailability: true,
		Start:            mustParse(t, "2024-03-01T09:00:00Z"),
		End:              mustParse(t, "2024-03-01T10:00:00Z"),
	})
	// Different provider, must not show up.
	store.addAppointment(models.Appointment{
		ProviderID: 2,
		ServiceID:  uintPtr(9),
		CustomerID: uintPtr(3),
		Start:      mustParse(t, "2024-03-01T09:00:00Z"),
		End:        mustParse(t, "2024-03-01T10:00:00Z"),
		Status:     string(StatusConfirmed),
	})

	list, err := engine.ConflictingAppointments(ctx, 1, iv(t, "2024-03-01T08:00:00Z", "2024-03-01T13:00:00Z"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d conflicts, want 2", len(list))
	}
	if !list[0].IsUnavailability {
		t.Error("conflicts not sorted by start time")
	}
}

// Booking round-trip: once a booking lands, re-checking the same slot
// without exclusion reports exactly one same-service conflict.
func TestBookingRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	engine := newEngine(store)

	slot := iv(t, "2024-04-02T14:00:00Z", "2024-04-02T15:00:00Z")

	res, _ := engine.CheckAvailability(ctx, 5, 2, slot, 0)
	if !res.Available {
		t.Fatalf("fresh slot must be available, got %+v", res)
	}

	store.addAppointment(models.Appointment{
		ProviderID: 5,
		ServiceID:  uintPtr(2),
		CustomerID: uintPtr(8),
		Start:      slot.Start,
		End:        slot.End,
		Status:     string(InitialStatus()),
	})

	res, _ = engine.CheckAvailability(ctx, 5, 2, slot, 0)
	if res.Available || res.SameServiceConflicts != 1 {
		t.Errorf("after booking: %+v, want unavailable with one same-service conflict", res)
	}
}
