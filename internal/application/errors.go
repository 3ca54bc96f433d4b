package application

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrAlreadyExists is returned when a record with the same id exists.
	ErrAlreadyExists = errors.New("application: already exists")
)

// ValidationError captures field level validation issues that callers can
// surface to the operator. No state changes when one is returned.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ConflictError rejects a commit that would double-book a resource. It names
// the colliding appointment, resource and date so the operator can resolve
// the clash.
type ConflictError struct {
	WithID     string
	ResourceID string
	Date       string
}

// Error implements the error interface.
func (c *ConflictError) Error() string {
	return fmt.Sprintf("conflict with appointment %s on resource %s, %s", c.WithID, c.ResourceID, c.Date)
}
