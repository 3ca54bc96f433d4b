package application

import "time"

// AppointmentInput captures operator provided appointment fields. EndTime
// may be empty; the planner derives it from the service catalog.
type AppointmentInput struct {
	Date         string
	StartTime    string
	EndTime      string
	ResourceID   string
	Service      string
	Status       string
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
}

// ResourceInput captures operator provided vehicle/technician fields.
type ResourceInput struct {
	Name string
}

// Resource is a vehicle/technician catalog entry exposed by the services.
type Resource struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RescheduleParams describes a drag-to-move commit: the target resource
// column and the raw drop offset in minutes from the top of the visible
// scheduling window.
type RescheduleParams struct {
	AppointmentID string
	ResourceID    string
	OffsetMinutes float64
}
