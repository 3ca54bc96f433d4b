package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/proxiglass/planning/internal/persistence"
	"github.com/proxiglass/planning/internal/scheduling"
	"github.com/proxiglass/planning/internal/testfixtures"
)

func TestAppointmentRoundTrip(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	fixture := testfixtures.NewAppointmentFixture(
		testfixtures.WithClient("Mme Martin"),
		testfixtures.WithNotes("ligne 1\nligne 2"),
	)
	appt := fixture.Domain()

	if err := harness.Appointments.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := harness.Appointments.GetAppointment(ctx, appt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if stored.Client != "Mme Martin" || stored.Notes != "ligne 1\nligne 2" {
		t.Errorf("stored = %+v", stored)
	}
	if stored.Date != appt.Date || stored.StartTime != appt.StartTime || stored.EndTime != appt.EndTime {
		t.Errorf("slot changed across the round trip: %+v", stored)
	}
	if stored.Status != appt.Status {
		t.Errorf("Status = %q, want %q", stored.Status, appt.Status)
	}
	// Timestamps survive at RFC3339 (second) precision.
	if !stored.CreatedAt.Equal(appt.CreatedAt.UTC().Truncate(time.Second)) {
		t.Errorf("CreatedAt = %v, want %v", stored.CreatedAt, appt.CreatedAt)
	}
}

func TestCreateAppointmentDuplicate(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	appt := testfixtures.NewAppointmentFixture().Domain()
	if err := harness.Appointments.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := harness.Appointments.CreateAppointment(ctx, appt); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateAppointmentRequiresID(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)

	appt := testfixtures.NewAppointmentFixture(testfixtures.WithAppointmentID("")).Domain()
	if err := harness.Appointments.CreateAppointment(context.Background(), appt); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestUpdateAppointment(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	appt := testfixtures.NewAppointmentFixture().Domain()
	if err := harness.Appointments.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("create: %v", err)
	}

	appt.StartTime = "11:00"
	appt.EndTime = "12:00"
	appt.Price = "150"
	if err := harness.Appointments.UpdateAppointment(ctx, appt); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := harness.Appointments.GetAppointment(ctx, appt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.StartTime != "11:00" || stored.Price != "150" {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)

	appt := testfixtures.NewAppointmentFixture(testfixtures.WithAppointmentID("ghost")).Domain()
	if err := harness.Appointments.UpdateAppointment(context.Background(), appt); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)

	if _, err := harness.Appointments.GetAppointment(context.Background(), "ghost"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAppointmentsOrder(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	later := testfixtures.NewAppointmentFixture(
		testfixtures.WithDate("2025-06-12"),
		testfixtures.WithSlot("09:00", "10:00"),
	).Domain()
	earlier := testfixtures.NewAppointmentFixture(
		testfixtures.WithDate("2025-06-10"),
		testfixtures.WithSlot("14:00", "15:00"),
	).Domain()
	first := testfixtures.NewAppointmentFixture(
		testfixtures.WithDate("2025-06-10"),
		testfixtures.WithSlot("09:00", "10:00"),
		testfixtures.WithResource("t2"),
	).Domain()

	for _, appt := range []scheduling.Appointment{later, earlier, first} {
		if err := harness.Appointments.CreateAppointment(ctx, appt); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	listed, err := harness.Appointments.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("count = %d", len(listed))
	}
	if listed[0].ID != first.ID || listed[1].ID != earlier.ID || listed[2].ID != later.ID {
		t.Fatalf("order = %s, %s, %s", listed[0].ID, listed[1].ID, listed[2].ID)
	}
}

func TestDeleteAppointment(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	appt := testfixtures.NewAppointmentFixture().Domain()
	if err := harness.Appointments.CreateAppointment(ctx, appt); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := harness.Appointments.DeleteAppointment(ctx, appt.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := harness.Appointments.DeleteAppointment(ctx, appt.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAllAppointments(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := harness.Appointments.CreateAppointment(ctx, testfixtures.NewAppointmentFixture().Domain()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := harness.Appointments.DeleteAllAppointments(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	listed, err := harness.Appointments.ListAppointments(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("count = %d, want 0", len(listed))
	}
}

func TestResourceRoundTrip(t *testing.T) {
	t.Parallel()

	harness := testfixtures.NewSQLiteHarness(t)
	ctx := context.Background()

	resource := testfixtures.NewResourceFixture(testfixtures.WithResourceName("Véhicule 1 (bleu)")).Persistence()
	if err := harness.Resources.CreateResource(ctx, resource); err != nil {
		t.Fatalf("create: %v", err)
	}

	stored, err := harness.Resources.GetResource(ctx, resource.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Véhicule 1 (bleu)" {
		t.Errorf("Name = %q", stored.Name)
	}

	if err := harness.Resources.CreateResource(ctx, resource); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	stored.Name = "Véhicule 1 (repeint)"
	if err := harness.Resources.UpdateResource(ctx, stored); err != nil {
		t.Fatalf("update: %v", err)
	}

	listed, err := harness.Resources.ListResources(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Véhicule 1 (repeint)" {
		t.Fatalf("listed = %+v", listed)
	}

	if err := harness.Resources.DeleteResource(ctx, resource.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := harness.Resources.GetResource(ctx, resource.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
