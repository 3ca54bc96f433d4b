package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/proxiglass/planning/internal/export"
	"github.com/proxiglass/planning/internal/persistence"
	"github.com/proxiglass/planning/internal/scheduling"
)

// AppointmentStore captures the persistence interactions needed by the
// planner. Every commit loads the full committed set, validates against it,
// and applies exactly one change.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appt scheduling.Appointment) error
	UpdateAppointment(ctx context.Context, appt scheduling.Appointment) error
	GetAppointment(ctx context.Context, id string) (scheduling.Appointment, error)
	ListAppointments(ctx context.Context) ([]scheduling.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	DeleteAllAppointments(ctx context.Context) error
}

// PlannerService orchestrates validation, conflict detection and persistence
// for appointment operations.
type PlannerService struct {
	appointments AppointmentStore
	catalog      scheduling.ServiceCatalog
	grid         scheduling.Grid
	identity     export.CalendarIdentity
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewPlannerService wires dependencies for appointment operations.
func NewPlannerService(appointments AppointmentStore, catalog scheduling.ServiceCatalog, grid scheduling.Grid, identity export.CalendarIdentity, idGenerator func() string, now func() time.Time) *PlannerService {
	return NewPlannerServiceWithLogger(appointments, catalog, grid, identity, idGenerator, now, nil)
}

// NewPlannerServiceWithLogger constructs a planner with a specified logger.
func NewPlannerServiceWithLogger(appointments AppointmentStore, catalog scheduling.ServiceCatalog, grid scheduling.Grid, identity export.CalendarIdentity, idGenerator func() string, now func() time.Time, logger *slog.Logger) *PlannerService {
	if catalog == nil {
		catalog = scheduling.DefaultCatalog()
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &PlannerService{
		appointments: appointments,
		catalog:      catalog,
		grid:         grid,
		identity:     identity,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *PlannerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PlannerService", operation, attrs...)
}

// Create validates and completes a candidate appointment before committing
// it. The end time is derived from the service catalog when absent, and the
// commit is rejected with a ConflictError when it would double-book the
// assigned resource.
func (s *PlannerService) Create(ctx context.Context, input AppointmentInput) (appt scheduling.Appointment, err error) {
	if s == nil {
		return scheduling.Appointment{}, fmt.Errorf("PlannerService is nil")
	}

	logger := s.loggerWith(ctx, "Create", "client", input.Client, "date", input.Date)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create appointment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("appointment_id", appt.ID).InfoContext(ctx, "appointment created")
	}()

	candidate, vErr := s.buildCandidate(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	candidate.ID = s.idGenerator()
	candidate.CreatedAt = s.now()
	candidate.UpdatedAt = candidate.CreatedAt

	if err = s.rejectConflicts(ctx, candidate, ""); err != nil {
		return
	}

	if err = mapRepoError(s.appointments.CreateAppointment(ctx, candidate)); err != nil {
		return
	}
	appt = candidate
	return
}

// Update applies the same validation pipeline as Create to an existing
// appointment, excluding its own prior version from conflict detection.
func (s *PlannerService) Update(ctx context.Context, id string, input AppointmentInput) (appt scheduling.Appointment, err error) {
	if s == nil {
		return scheduling.Appointment{}, fmt.Errorf("PlannerService is nil")
	}

	logger := s.loggerWith(ctx, "Update", "appointment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update appointment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment updated")
	}()

	existing, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	candidate, vErr := s.buildCandidate(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	candidate.ID = existing.ID
	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = s.now()

	if err = s.rejectConflicts(ctx, candidate, existing.ID); err != nil {
		return
	}

	if err = mapRepoError(s.appointments.UpdateAppointment(ctx, candidate)); err != nil {
		return
	}
	appt = candidate
	return
}

// Delete removes an appointment. Deletion is immediate and irreversible;
// undo is an external concern.
func (s *PlannerService) Delete(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("PlannerService is nil")
	}

	logger := s.loggerWith(ctx, "Delete", "appointment_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete appointment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment deleted")
	}()

	return mapRepoError(s.appointments.DeleteAppointment(ctx, id))
}

// Reschedule commits a drag-to-move: the drop offset is snapped to the grid
// and clamped to the visible window, the duration is preserved, and the move
// is validated against the committed set like any other edit.
func (s *PlannerService) Reschedule(ctx context.Context, params RescheduleParams) (appt scheduling.Appointment, err error) {
	if s == nil {
		return scheduling.Appointment{}, fmt.Errorf("PlannerService is nil")
	}

	logger := s.loggerWith(ctx, "Reschedule",
		"appointment_id", params.AppointmentID,
		"resource_id", params.ResourceID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to reschedule appointment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "appointment rescheduled", "start", appt.StartTime, "end", appt.EndTime)
	}()

	existing, err := s.appointments.GetAppointment(ctx, params.AppointmentID)
	if err != nil {
		err = mapRepoError(err)
		return
	}

	move, err := s.grid.PlanMove(existing, params.ResourceID, params.OffsetMinutes)
	if err != nil {
		err = timeFieldError(err)
		return
	}

	moved := existing
	moved.ResourceID = move.ResourceID
	moved.StartTime = move.StartTime
	moved.EndTime = move.EndTime
	moved.UpdatedAt = s.now()

	if err = s.rejectConflicts(ctx, moved, moved.ID); err != nil {
		return
	}

	if err = mapRepoError(s.appointments.UpdateAppointment(ctx, moved)); err != nil {
		return
	}
	appt = moved
	return
}

// Get retrieves one committed appointment.
func (s *PlannerService) Get(ctx context.Context, id string) (scheduling.Appointment, error) {
	if s == nil {
		return scheduling.Appointment{}, fmt.Errorf("PlannerService is nil")
	}
	appt, err := s.appointments.GetAppointment(ctx, id)
	if err != nil {
		return scheduling.Appointment{}, mapRepoError(err)
	}
	return appt, nil
}

// List derives a filtered, deterministically ordered view of the committed
// set. Views are always recomputed, never cached.
func (s *PlannerService) List(ctx context.Context, filter scheduling.Filter) ([]scheduling.Appointment, error) {
	if s == nil {
		return nil, fmt.Errorf("PlannerService is nil")
	}
	appointments, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return scheduling.Project(appointments, filter), nil
}

// DayBoard buckets one day's appointments into per-resource columns for the
// day view. Unknown and unassigned resources fall into the unassigned
// column.
func (s *PlannerService) DayBoard(ctx context.Context, date string, resourceIDs []string) (map[string][]scheduling.Appointment, error) {
	if s == nil {
		return nil, fmt.Errorf("PlannerService is nil")
	}
	appointments, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return scheduling.GroupByResource(appointments, date, resourceIDs), nil
}

// YearOverview aggregates counts and revenue for a calendar year together
// with the twelve month grid layouts.
func (s *PlannerService) YearOverview(ctx context.Context, year int) (scheduling.YearSummary, []scheduling.MonthGrid, error) {
	if s == nil {
		return scheduling.YearSummary{}, nil, fmt.Errorf("PlannerService is nil")
	}
	appointments, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return scheduling.YearSummary{}, nil, err
	}
	return scheduling.AggregateYear(year, appointments), scheduling.YearGrids(year), nil
}

// ExportCSV serializes the committed set, ordered by date and start time,
// to the writer.
func (s *PlannerService) ExportCSV(ctx context.Context, w io.Writer) error {
	if s == nil {
		return fmt.Errorf("PlannerService is nil")
	}
	appointments, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, scheduling.Project(appointments, scheduling.Filter{}))
}

// ExportICS renders one appointment as a calendar block.
func (s *PlannerService) ExportICS(ctx context.Context, id string) (string, error) {
	appt, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return export.AppointmentICS(appt, s.now(), s.identity), nil
}

// Reset deletes every appointment.
func (s *PlannerService) Reset(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("PlannerService is nil")
	}
	return s.appointments.DeleteAllAppointments(ctx)
}

// Seed inserts the demonstration appointments for the month of the current
// clock, deriving end times from the catalog. Seeded records go through the
// normal create pipeline, so they respect the no-overlap invariant.
func (s *PlannerService) Seed(ctx context.Context) ([]scheduling.Appointment, error) {
	if s == nil {
		return nil, fmt.Errorf("PlannerService is nil")
	}

	month := s.now().Format("2006-01")
	samples := []AppointmentInput{
		{
			Date: month + "-10", StartTime: "09:00", Client: "Mme Martin",
			Service: "Remplacement pare-brise", LocationType: "domicile",
			Price: "420", Status: string(scheduling.StatusConfirmed),
			ResourceID: "t1", Plate: "AA-123-BB",
		},
		{
			Date: month + "-10", StartTime: "10:30", Client: "Garage Pro B2B",
			Service: "Réparation impact", LocationType: "travail",
			Price: "90", Status: string(scheduling.StatusToConfirm),
			ResourceID: "t1", Plate: "CC-456-DD",
		},
		{
			Date: month + "-18", StartTime: "14:00", Client: "Mr Leroy",
			Service: "Remplacement vitre latérale", LocationType: "domicile",
			Price: "260", Status: string(scheduling.StatusConfirmed),
			ResourceID: "t2", Plate: "EE-789-FF",
		},
	}

	created := make([]scheduling.Appointment, 0, len(samples))
	for _, sample := range samples {
		appt, err := s.Create(ctx, sample)
		if err != nil {
			var cErr *ConflictError
			if errors.As(err, &cErr) {
				continue // slot already taken, keep the existing record
			}
			return created, err
		}
		created = append(created, appt)
	}
	return created, nil
}

// buildCandidate validates the input and assembles a complete appointment
// with a derived end time. ID and timestamps are left for the caller.
func (s *PlannerService) buildCandidate(input AppointmentInput) (scheduling.Appointment, *ValidationError) {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Client) == "" {
		vErr.add("client", "client is required")
	}

	if strings.TrimSpace(input.Date) == "" {
		vErr.add("date", "date is required")
	} else if _, err := scheduling.ParseDate(input.Date); err != nil {
		vErr.add("date", "date must be YYYY-MM-DD")
	}

	startMinutes := -1
	if _, err := scheduling.ParseClock(input.StartTime); err != nil {
		vErr.add("start_time", "start time must be HH:MM")
	} else {
		startMinutes, _ = scheduling.ParseClock(input.StartTime)
	}

	status := scheduling.Status(input.Status)
	if status == "" {
		status = scheduling.StatusToConfirm
	}
	if !status.Valid() {
		vErr.add("status", "unknown status")
	}

	endTime := strings.TrimSpace(input.EndTime)
	if endTime != "" {
		if endMinutes, err := scheduling.ParseClock(endTime); err != nil {
			vErr.add("end_time", "end time must be HH:MM")
		} else if startMinutes >= 0 && endMinutes <= startMinutes {
			vErr.add("time", "start must be before end")
		}
	} else if startMinutes >= 0 {
		derived, rolled, err := scheduling.ResolveEndTime(s.catalog, input.Service, input.Date, input.StartTime, "")
		switch {
		case err != nil:
			vErr.add("end_time", "end time could not be derived")
		case rolled:
			vErr.add("end_time", "derived end crosses midnight")
		default:
			endTime = derived
		}
	}

	if vErr.HasErrors() {
		return scheduling.Appointment{}, vErr
	}

	return scheduling.Appointment{
		Date:         strings.TrimSpace(input.Date),
		StartTime:    input.StartTime,
		EndTime:      endTime,
		ResourceID:   strings.TrimSpace(input.ResourceID),
		Service:      input.Service,
		Status:       status,
		Title:        strings.TrimSpace(input.Title),
		Client:       strings.TrimSpace(input.Client),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		LocationType: input.LocationType,
		Plate:        strings.ToUpper(strings.TrimSpace(input.Plate)),
		Insurer:      strings.TrimSpace(input.Insurer),
		ClaimNumber:  strings.TrimSpace(input.ClaimNumber),
		Price:        strings.TrimSpace(input.Price),
		Notes:        input.Notes,
	}, vErr
}

// rejectConflicts enforces the no-overlap invariant against the committed
// set. The same policy applies to create, edit and reschedule.
func (s *PlannerService) rejectConflicts(ctx context.Context, candidate scheduling.Appointment, excludeID string) error {
	existing, err := s.appointments.ListAppointments(ctx)
	if err != nil {
		return err
	}
	if conflict, found := scheduling.FindConflict(candidate, existing, excludeID); found {
		return &ConflictError{
			WithID:     conflict.WithID,
			ResourceID: conflict.ResourceID,
			Date:       conflict.Date,
		}
	}
	return nil
}

func timeFieldError(err error) error {
	var fErr *scheduling.FormatError
	if errors.As(err, &fErr) {
		vErr := &ValidationError{}
		vErr.add("time", "stored clock times are malformed")
		return vErr
	}
	return err
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
