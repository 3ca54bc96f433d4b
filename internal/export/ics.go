package export

import (
	"strings"
	"time"

	"github.com/proxiglass/planning/internal/scheduling"
)

// CalendarIdentity carries the PRODID components of exported calendars.
type CalendarIdentity struct {
	Product string
	Locale  string
}

// DefaultCalendarIdentity matches the historical export identity.
func DefaultCalendarIdentity() CalendarIdentity {
	return CalendarIdentity{Product: "ProxiGlass", Locale: "FR"}
}

// AppointmentICS renders one appointment as a standalone VCALENDAR/VEVENT
// block with CRLF line endings. Output is byte-for-byte reproducible given
// the same appointment and clock; the DESCRIPTION joins the detail fields
// with literal \n escapes.
func AppointmentICS(appt scheduling.Appointment, now time.Time, identity CalendarIdentity) string {
	summary := appt.Title
	if summary == "" {
		summary = appt.Service
	}

	description := strings.Join([]string{
		"Service: " + appt.Service,
		"Client: " + appt.Client,
		"Tél: " + appt.Phone,
		"Immatriculation: " + appt.Plate,
		"Assureur: " + appt.Insurer,
		"Sinistre: " + appt.ClaimNumber,
		"Notes: " + appt.Notes,
	}, `\n`)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//" + identity.Product + "//Planning//" + identity.Locale,
		"BEGIN:VEVENT",
		"UID:" + appt.ID,
		"DTSTAMP:" + now.Format("20060102T150405"),
		"DTSTART:" + appt.Date + "T" + scheduling.CompactClock(appt.StartTime) + "00",
		"DTEND:" + appt.Date + "T" + scheduling.CompactClock(appt.EndTime) + "00",
		"SUMMARY:" + summary + " – " + appt.Client,
		"LOCATION:" + strings.ToUpper(appt.LocationType) + " " + appt.Address,
		"DESCRIPTION:" + description,
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return strings.Join(lines, "\r\n")
}
