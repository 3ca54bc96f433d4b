package export

import (
	"strings"
	"testing"
	"time"

	"github.com/proxiglass/planning/internal/scheduling"
)

func TestAppointmentICS(t *testing.T) {
	t.Parallel()

	appt := scheduling.Appointment{
		ID:           "a1",
		Date:         "2025-06-10",
		StartTime:    "09:00",
		EndTime:      "10:30",
		ResourceID:   "t1",
		Service:      "Remplacement pare-brise",
		Status:       scheduling.StatusConfirmed,
		Title:        "Pare-brise Clio",
		Client:       "Mme Martin",
		Phone:        "06 11 22 33 44",
		Address:      "8 rue des Lilas, Lyon",
		LocationType: "atelier",
		Plate:        "AA-123-BB",
		Insurer:      "AssurAuto",
		ClaimNumber:  "SIN-2025-001",
		Notes:        "Prévoir 2h",
	}
	now := time.Date(2025, time.June, 1, 12, 30, 45, 0, time.UTC)

	got := AppointmentICS(appt, now, DefaultCalendarIdentity())

	want := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//ProxiGlass//Planning//FR",
		"BEGIN:VEVENT",
		"UID:a1",
		"DTSTAMP:20250601T123045",
		"DTSTART:2025-06-10T090000",
		"DTEND:2025-06-10T103000",
		"SUMMARY:Pare-brise Clio – Mme Martin",
		"LOCATION:ATELIER 8 rue des Lilas, Lyon",
		`DESCRIPTION:Service: Remplacement pare-brise\nClient: Mme Martin\nTél: 06 11 22 33 44\nImmatriculation: AA-123-BB\nAssureur: AssurAuto\nSinistre: SIN-2025-001\nNotes: Prévoir 2h`,
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	if got != want {
		t.Fatalf("ics block mismatch:\ngot:\n%s\n\nwant:\n%s", got, want)
	}
}

func TestAppointmentICSFallsBackToService(t *testing.T) {
	t.Parallel()

	appt := scheduling.Appointment{
		ID:        "a2",
		Date:      "2025-06-10",
		StartTime: "14:00",
		EndTime:   "14:45",
		Service:   "Réparation impact",
		Client:    "Mr Leroy",
	}
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	got := AppointmentICS(appt, now, DefaultCalendarIdentity())

	if !strings.Contains(got, "SUMMARY:Réparation impact – Mr Leroy\r\n") {
		t.Fatalf("summary must fall back to the service name, got:\n%s", got)
	}
	if !strings.Contains(got, "DTSTAMP:20250601T000000\r\n") {
		t.Fatalf("missing zero-padded DTSTAMP in:\n%s", got)
	}
}

func TestAppointmentICSIsStable(t *testing.T) {
	t.Parallel()

	appt := scheduling.Appointment{ID: "a1", Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00"}
	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)

	first := AppointmentICS(appt, now, DefaultCalendarIdentity())
	second := AppointmentICS(appt, now, DefaultCalendarIdentity())
	if first != second {
		t.Fatal("identical inputs must produce identical bytes")
	}
	if strings.Contains(first, "\n") && !strings.Contains(first, "\r\n") {
		t.Fatal("line endings must be CRLF")
	}
}

func TestAppointmentICSCustomIdentity(t *testing.T) {
	t.Parallel()

	appt := scheduling.Appointment{ID: "a1", Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00"}
	identity := CalendarIdentity{Product: "GlassCo", Locale: "BE"}

	got := AppointmentICS(appt, time.Time{}, identity)
	if !strings.Contains(got, "PRODID:-//GlassCo//Planning//BE\r\n") {
		t.Fatalf("custom identity missing in:\n%s", got)
	}
}
