package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/proxiglass/planning/internal/application"
	"github.com/proxiglass/planning/internal/persistence"
	"github.com/proxiglass/planning/internal/scheduling"
)

var (
	appointmentCounter uint64
	resourceCounter    uint64
)

var referenceTime = time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// -------------------------- Appointment fixtures --------------------------

// AppointmentFixture is a deterministic appointment record for application or
// persistence tests. Successive fixtures occupy successive non-overlapping
// hour slots on the same vehicle so tests opt in to conflicts explicitly.
type AppointmentFixture struct {
	ID           string
	Date         string
	StartTime    string
	EndTime      string
	ResourceID   string
	Service      string
	Status       scheduling.Status
	Title        string
	Client       string
	Phone        string
	Address      string
	LocationType string
	Plate        string
	Insurer      string
	ClaimNumber  string
	Price        string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AppointmentOption configures the generated appointment fixture.
type AppointmentOption func(*AppointmentFixture)

// NewAppointmentFixture returns a deterministic appointment with optional
// overrides. The default slot is one hour starting at 08:00 plus one hour per
// fixture already created, on vehicle t1, date 2025-06-10.
func NewAppointmentFixture(opts ...AppointmentOption) AppointmentFixture {
	idx := atomic.AddUint64(&appointmentCounter, 1)
	startMinutes := 8*60 + int(idx-1)%9*60
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := AppointmentFixture{
		ID:           fmt.Sprintf("appt-%03d", idx),
		Date:         "2025-06-10",
		StartTime:    scheduling.FormatClock(startMinutes),
		EndTime:      scheduling.FormatClock(startMinutes + 60),
		ResourceID:   "t1",
		Service:      "Réparation impact",
		Status:       scheduling.StatusConfirmed,
		Title:        fmt.Sprintf("Intervention %03d", idx),
		Client:       fmt.Sprintf("Client %03d", idx),
		Phone:        "06 12 34 56 78",
		Address:      "10 rue des Vitriers, Lyon",
		LocationType: "atelier",
		Plate:        fmt.Sprintf("AB-%03d-CD", idx),
		Insurer:      "AssurAuto",
		ClaimNumber:  fmt.Sprintf("SIN-%03d", idx),
		Price:        "90",
		Notes:        "",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAppointmentID overrides the generated identifier.
func WithAppointmentID(id string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.ID = id
	}
}

// WithDate overrides the appointment date.
func WithDate(date string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Date = date
	}
}

// WithSlot sets both start and end times.
func WithSlot(start, end string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.StartTime = start
		f.EndTime = end
	}
}

// WithResource assigns the appointment to a vehicle column.
func WithResource(resourceID string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.ResourceID = resourceID
	}
}

// WithService overrides the service name.
func WithService(service string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Service = service
	}
}

// WithStatus overrides the workflow status.
func WithStatus(status scheduling.Status) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Status = status
	}
}

// WithClient overrides the client name.
func WithClient(client string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Client = client
	}
}

// WithPrice overrides the quoted price.
func WithPrice(price string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Price = price
	}
}

// WithNotes sets free-form notes on the fixture.
func WithNotes(notes string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Notes = notes
	}
}

// WithAppointmentTimestamps sets created and updated timestamps.
func WithAppointmentTimestamps(created, updated time.Time) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Domain returns the fixture as a scheduling.Appointment value.
func (f AppointmentFixture) Domain() scheduling.Appointment {
	return scheduling.Appointment{
		ID:           f.ID,
		Date:         f.Date,
		StartTime:    f.StartTime,
		EndTime:      f.EndTime,
		ResourceID:   f.ResourceID,
		Service:      f.Service,
		Status:       f.Status,
		Title:        f.Title,
		Client:       f.Client,
		Phone:        f.Phone,
		Address:      f.Address,
		LocationType: f.LocationType,
		Plate:        f.Plate,
		Insurer:      f.Insurer,
		ClaimNumber:  f.ClaimNumber,
		Price:        f.Price,
		Notes:        f.Notes,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Input returns the fixture as an application.AppointmentInput.
func (f AppointmentFixture) Input() application.AppointmentInput {
	return application.AppointmentInput{
		Date:         f.Date,
		StartTime:    f.StartTime,
		EndTime:      f.EndTime,
		ResourceID:   f.ResourceID,
		Service:      f.Service,
		Status:       string(f.Status),
		Title:        f.Title,
		Client:       f.Client,
		Phone:        f.Phone,
		Address:      f.Address,
		LocationType: f.LocationType,
		Plate:        f.Plate,
		Insurer:      f.Insurer,
		ClaimNumber:  f.ClaimNumber,
		Price:        f.Price,
		Notes:        f.Notes,
	}
}

// --------------------------- Resource fixtures ---------------------------

// ResourceFixture is a deterministic vehicle/technician record.
type ResourceFixture struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResourceOption configures the generated resource fixture.
type ResourceOption func(*ResourceFixture)

// NewResourceFixture returns a deterministic vehicle fixture.
func NewResourceFixture(opts ...ResourceOption) ResourceFixture {
	idx := atomic.AddUint64(&resourceCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := ResourceFixture{
		ID:        fmt.Sprintf("vehicle-%03d", idx),
		Name:      fmt.Sprintf("Véhicule %03d", idx),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithResourceID overrides the generated identifier.
func WithResourceID(id string) ResourceOption {
	return func(f *ResourceFixture) {
		f.ID = id
	}
}

// WithResourceName overrides the generated name.
func WithResourceName(name string) ResourceOption {
	return func(f *ResourceFixture) {
		f.Name = name
	}
}

// Persistence returns the fixture as a persistence.Resource value.
func (f ResourceFixture) Persistence() persistence.Resource {
	return persistence.Resource{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Application returns the fixture as an application.Resource value.
func (f ResourceFixture) Application() application.Resource {
	return application.Resource{
		ID:        f.ID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
