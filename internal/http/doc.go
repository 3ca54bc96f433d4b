// Package http provides HTTP handlers and middleware for the planning API.
//
// The router exposes the following endpoints:
//   - GET /appointments?date=&status=&q=: filtered, date+time ordered listing
//     with per-date grouping keys. status accepts to_confirm, confirmed,
//     cancelled or all (the default).
//   - POST /appointments, PUT /appointments/{id}, DELETE /appointments/{id}:
//     appointment management exchanging the `appointmentDTO` payload defined
//     in appointment_handler.go. Commits are validated and conflict checked;
//     a double-booking is rejected with 409 and the colliding slot.
//   - POST /appointments/{id}/reschedule: drag-to-move commit. Body:
//     {"resource_id","offset_minutes"} where offset_minutes is the raw drop
//     offset from the top of the visible window before grid snapping.
//   - GET /appointments/{id}/ics: one appointment as a text/calendar block.
//   - GET /appointments/export/csv: the full set as text/csv with UTF-8 BOM.
//   - POST /appointments/seed, DELETE /appointments: demonstration data and
//     full reset.
//   - GET /calendar/{year}: per-date counts, per-month count/revenue totals
//     and the twelve Monday-first month grid layouts.
//   - GET /calendar/{year}/{date}: the per-resource day board for one date.
//   - GET /resources, POST /resources, PUT /resources/{id},
//     DELETE /resources/{id}: vehicle/technician catalog endpoints.
//
// Request/response DTOs live alongside their respective handlers so tests
// and documentation share the same ground truth.
package http
