package testfixtures

import (
	"log/slog"
	"time"

	"github.com/proxiglass/planning/internal/application"
	"github.com/proxiglass/planning/internal/export"
	"github.com/proxiglass/planning/internal/scheduling"
)

// ServiceFactory builds application services with deterministic identifiers
// and a controllable clock.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Catalog     scheduling.ServiceCatalog
	Grid        scheduling.Grid
	Identity    export.CalendarIdentity
	Logger      *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a factory with deterministic defaults: the
// shared reference clock, "id-N" identifiers, the standard service catalog
// and the 08:00–18:00 grid.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Catalog:     scheduling.DefaultCatalog(),
		Grid:        scheduling.DefaultGrid(),
		Identity:    export.DefaultCalendarIdentity(),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithFactoryClock overrides the factory clock.
func WithFactoryClock(clock *Clock) ServiceFactoryOption {
	return func(f *ServiceFactory) {
		f.Clock = clock
	}
}

// WithFactoryIDGenerator overrides the factory identifier generator.
func WithFactoryIDGenerator(gen *IDGenerator) ServiceFactoryOption {
	return func(f *ServiceFactory) {
		f.IDGenerator = gen
	}
}

// WithFactoryGrid overrides the reschedule grid.
func WithFactoryGrid(grid scheduling.Grid) ServiceFactoryOption {
	return func(f *ServiceFactory) {
		f.Grid = grid
	}
}

// WithFactoryLogger sets the logger injected into constructed services.
func WithFactoryLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(f *ServiceFactory) {
		f.Logger = logger
	}
}

// Planner builds a PlannerService on top of the provided store.
func (f *ServiceFactory) Planner(store application.AppointmentStore) *application.PlannerService {
	return application.NewPlannerServiceWithLogger(
		store,
		f.Catalog,
		f.Grid,
		f.Identity,
		f.IDGenerator.NextFunc(),
		f.Clock.NowFunc(),
		f.Logger,
	)
}

// Resources builds a ResourceService on top of the provided store.
func (f *ServiceFactory) Resources(store application.ResourceStore) *application.ResourceService {
	return application.NewResourceServiceWithLogger(
		store,
		f.IDGenerator.NextFunc(),
		f.Clock.NowFunc(),
		f.Logger,
	)
}
