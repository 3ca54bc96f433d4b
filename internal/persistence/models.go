package persistence

import "time"

// Resource is a vehicle/technician slot that appointments are assigned to.
type Resource struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
