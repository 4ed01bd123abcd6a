package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plannora/appointments-api/internal/domain/schedule"
	"github.com/plannora/appointments-api/internal/models"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestCreateAppointmentValidation(t *testing.T) {
	fx := newFixture()
	uc := fx.create()

	cases := []struct {
		name  string
		in    CreateInput
		field string
	}{
		{
			name:  "missing provider",
			in:    CreateInput{CustomerID: 2, ServiceID: 7},
			field: "provider_id",
		},
		{
			name:  "missing customer",
			in:    CreateInput{ProviderID: 1, ServiceID: 7},
			field: "customer_id",
		},
		{
			name:  "missing service",
			in:    CreateInput{ProviderID: 1, CustomerID: 2},
			field: "service_id",
		},
		{
			name: "end before start",
			in: CreateInput{
				ProviderID: 1, CustomerID: 2, ServiceID: 7,
				Start: at(t, "2026-03-02T10:00:00Z"),
				End:   at(t, "2026-03-02T09:00:00Z"),
			},
			field: "end",
		},
		{
			name: "below minimum duration",
			in: CreateInput{
				ProviderID: 1, CustomerID: 2, ServiceID: 7,
				Start: at(t, "2026-03-02T10:00:00Z"),
				End:   at(t, "2026-03-02T10:05:00Z"),
			},
			field: "end",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			var verr *schedule.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestCreateAppointmentReferences(t *testing.T) {
	fx := newFixture()
	uc := fx.create()

	base := CreateInput{
		Start: at(t, "2026-03-02T10:00:00Z"),
		End:   at(t, "2026-03-02T11:00:00Z"),
	}

	cases := []struct {
		name   string
		in     CreateInput
		entity string
	}{
		{"unknown provider", CreateInput{ProviderID: 99, CustomerID: 2, ServiceID: 7}, "provider"},
		{"customer as provider", CreateInput{ProviderID: 2, CustomerID: 2, ServiceID: 7}, "provider"},
		{"unknown customer", CreateInput{ProviderID: 1, CustomerID: 99, ServiceID: 7}, "customer"},
		{"provider as customer", CreateInput{ProviderID: 1, CustomerID: 1, ServiceID: 7}, "customer"},
		{"unknown service", CreateInput{ProviderID: 1, CustomerID: 2, ServiceID: 99}, "service"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.in
			in.Start, in.End = base.Start, base.End
			_, err := uc.Execute(context.Background(), in)
			var rerr *schedule.ReferenceError
			if !errors.As(err, &rerr) {
				t.Fatalf("want ReferenceError, got %v", err)
			}
			if rerr.Entity != tc.entity {
				t.Errorf("entity = %q, want %q", rerr.Entity, tc.entity)
			}
		})
	}
}

func TestCreateAppointmentBooksFreeSlot(t *testing.T) {
	fx := newFixture()
	uc := fx.create()
	booked := at(t, "2026-03-02T09:30:00Z")
	uc.now = func() time.Time { return booked }

	ap, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 1,
		CustomerID: 2,
		ServiceID:  7,
		Start:      at(t, "2026-03-02T10:00:00Z"),
		End:        at(t, "2026-03-02T11:00:00Z"),
		Location:   "Room 4",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.ID == 0 {
		t.Error("expected assigned id")
	}
	if ap.Status != string(schedule.StatusPending) {
		t.Errorf("status = %q, want pending", ap.Status)
	}
	if len(ap.Hash) != 32 {
		t.Errorf("hash length = %d, want 32", len(ap.Hash))
	}
	if !ap.BookTime.Equal(booked) {
		t.Errorf("book time = %v, want %v", ap.BookTime, booked)
	}
	if ap.CustomerID == nil || *ap.CustomerID != 2 {
		t.Errorf("customer id = %v, want 2", ap.CustomerID)
	}
	if ap.ServiceID == nil || *ap.ServiceID != 7 {
		t.Errorf("service id = %v, want 7", ap.ServiceID)
	}
}

func TestCreateAppointmentDerivesEndFromService(t *testing.T) {
	fx := newFixture()
	uc := fx.create()

	start := at(t, "2026-03-02T10:00:00Z")
	ap, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 1,
		CustomerID: 2,
		ServiceID:  8, // 30 minutes
		Start:      start,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := start.Add(30 * time.Minute); !ap.End.Equal(want) {
		t.Errorf("end = %v, want %v", ap.End, want)
	}
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	fx := newFixture()
	uc := fx.create()

	first, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 1, CustomerID: 2, ServiceID: 7,
		Start: at(t, "2026-03-02T09:00:00Z"),
		End:   at(t, "2026-03-02T10:00:00Z"),
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err = uc.Execute(context.Background(), CreateInput{
		ProviderID: 1, CustomerID: 3, ServiceID: 7,
		Start: at(t, "2026-03-02T09:30:00Z"),
		End:   at(t, "2026-03-02T10:30:00Z"),
	})
	var cerr *schedule.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if cerr.Result.SameServiceConflicts != 1 {
		t.Errorf("same-service conflicts = %d, want 1", cerr.Result.SameServiceConflicts)
	}

	// A booking starting exactly at the first one's end does not overlap.
	second, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 1, CustomerID: 3, ServiceID: 7,
		Start: at(t, "2026-03-02T10:00:00Z"),
		End:   at(t, "2026-03-02T11:00:00Z"),
	})
	if err != nil {
		t.Fatalf("back-to-back booking: %v", err)
	}
	if second.Hash == first.Hash {
		t.Error("expected distinct hashes")
	}
}

func TestCreateAppointmentOtherProviderUnaffected(t *testing.T) {
	fx := newFixture()
	fx.users.roles[4] = models.RoleProvider
	uc := fx.create()

	if _, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 1, CustomerID: 2, ServiceID: 7,
		Start: at(t, "2026-03-02T09:00:00Z"),
		End:   at(t, "2026-03-02T10:00:00Z"),
	}); err != nil {
		t.Fatalf("first provider: %v", err)
	}

	if _, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 4, CustomerID: 2, ServiceID: 7,
		Start: at(t, "2026-03-02T09:00:00Z"),
		End:   at(t, "2026-03-02T10:00:00Z"),
	}); err != nil {
		t.Fatalf("second provider, same slot: %v", err)
	}
}

func TestCreateAppointmentRejectsBlockedPeriod(t *testing.T) {
	fx := newFixture()
	fx.periods.periods = append(fx.periods.periods, models.BlockedPeriod{
		ID:    1,
		Name:  "Holiday",
		Start: at(t, "2026-03-02T00:00:00Z"),
		End:   at(t, "2026-03-02T23:59:59Z"),
	})
	uc := fx.create()

	_, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 1, CustomerID: 2, ServiceID: 7,
		Start: at(t, "2026-03-02T10:00:00Z"),
		End:   at(t, "2026-03-02T11:00:00Z"),
	})
	var cerr *schedule.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if len(cerr.Result.BlockingPeriods) != 1 {
		t.Errorf("blocking periods = %d, want 1", len(cerr.Result.BlockingPeriods))
	}
}

func TestCreateUnavailabilitySkipsChecks(t *testing.T) {
	fx := newFixture()
	uc := fx.create()

	// Fill the slot with a confirmed booking first.
	if _, err := uc.Execute(context.Background(), CreateInput{
		ProviderID: 1, CustomerID: 2, ServiceID: 7,
		Start: at(t, "2026-03-02T09:00:00Z"),
		End:   at(t, "2026-03-02T10:00:00Z"),
	}); err != nil {
		t.Fatalf("booking: %v", err)
	}

	// An unavailability block lands on the occupied slot regardless, with no
	// customer or service attached.
	block, err := uc.Execute(context.Background(), CreateInput{
		ProviderID:       1,
		Start:            at(t, "2026-03-02T09:00:00Z"),
		End:              at(t, "2026-03-02T12:00:00Z"),
		IsUnavailability: true,
	})
	if err != nil {
		t.Fatalf("unavailability: %v", err)
	}
	if block.Status != string(schedule.StatusNone) {
		t.Errorf("status = %q, want none", block.Status)
	}
	if block.CustomerID != nil || block.ServiceID != nil {
		t.Error("unavailability must not carry customer or service")
	}
}
