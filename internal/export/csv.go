// Package export serializes committed appointments to portable text formats.
// Both serializers are pure: they never mutate the appointment set and are
// byte-stable for a given input.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/proxiglass/planning/internal/scheduling"
)

var csvHeader = []string{
	"ID", "Date", "Start", "End", "Title", "Service", "Client", "Phone",
	"LocationType", "Address", "Plate", "Insurer", "ClaimNumber", "Status",
	"Price", "ResourceId", "Notes",
}

// WriteCSV emits one row per appointment in the fixed column order, preceded
// by a UTF-8 byte order mark and the header row. Lines end with \n. A field
// is quoted, with internal quotes doubled, iff it contains a comma, a
// newline or a double quote.
func WriteCSV(w io.Writer, appointments []scheduling.Appointment) error {
	lines := make([]string, 0, len(appointments)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, appt := range appointments {
		fields := []string{
			appt.ID, appt.Date, appt.StartTime, appt.EndTime, appt.Title,
			appt.Service, appt.Client, appt.Phone, appt.LocationType,
			appt.Address, appt.Plate, appt.Insurer, appt.ClaimNumber,
			string(appt.Status), appt.Price, appt.ResourceID, appt.Notes,
		}
		escaped := make([]string, len(fields))
		for i, field := range fields {
			escaped[i] = csvEscape(field)
		}
		lines = append(lines, strings.Join(escaped, ","))
	}

	if _, err := io.WriteString(w, "\uFEFF"+strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func csvEscape(field string) string {
	if !strings.ContainsAny(field, ",\n\"") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
