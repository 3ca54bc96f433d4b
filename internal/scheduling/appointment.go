package scheduling

import "time"

// Status tracks the confirmation state of an appointment.
type Status string

const (
	StatusToConfirm Status = "to_confirm"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusToConfirm, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// ResourceUnassigned is the sentinel resource identifier for appointments
// that have not been assigned to a vehicle. It is distinct from every real
// resource id, and unassigned appointments never conflict with one another.
const ResourceUnassigned = ""

// Appointment is a time-boxed intervention on a given calendar date.
// StartTime and EndTime are local "HH:MM" values on the same Date; the
// interval is half-open, so an appointment ending at 10:00 does not touch
// one starting at 10:00.
type Appointment struct {
	ID         string
	Date       string // ISO YYYY-MM-DD
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	ResourceID string
	Service    string
	Status     Status

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

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes computes the appointment length from its clock times.
func (a Appointment) DurationMinutes() (int, error) {
	start, err := ParseClock(a.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(a.EndTime)
	if err != nil {
		return 0, err
	}
	return end - start, nil
}
