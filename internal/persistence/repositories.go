// Package persistence defines the storage contracts of the planning service.
// Implementations must persist the full appointment set durably across
// restarts; the engine itself never knows how records are stored.
package persistence

import (
	"context"

	"github.com/proxiglass/planning/internal/scheduling"
)

// AppointmentRepository exposes CRUD operations over the appointment set.
//
// ListAppointments is fail-soft on corrupt rows: records that cannot be
// decoded are skipped rather than failing the load, so damaged storage
// degrades to a smaller (possibly empty) set instead of taking the system
// down.
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appt scheduling.Appointment) error
	UpdateAppointment(ctx context.Context, appt scheduling.Appointment) error
	GetAppointment(ctx context.Context, id string) (scheduling.Appointment, error)
	ListAppointments(ctx context.Context) ([]scheduling.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	DeleteAllAppointments(ctx context.Context) error
}

// ResourceRepository exposes CRUD operations for the vehicle catalog.
type ResourceRepository interface {
	CreateResource(ctx context.Context, resource Resource) error
	UpdateResource(ctx context.Context, resource Resource) error
	GetResource(ctx context.Context, id string) (Resource, error)
	ListResources(ctx context.Context) ([]Resource, error)
	DeleteResource(ctx context.Context, id string) error
}
