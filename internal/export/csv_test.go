package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/proxiglass/planning/internal/scheduling"
)

func TestWriteCSVHeaderAndBOM(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\uFEFF") {
		t.Fatal("output must start with a UTF-8 BOM")
	}
	want := "\uFEFF" + "ID,Date,Start,End,Title,Service,Client,Phone,LocationType,Address,Plate,Insurer,ClaimNumber,Status,Price,ResourceId,Notes"
	if out != want {
		t.Fatalf("empty export = %q, want header only", out)
	}
}

func TestWriteCSVEscaping(t *testing.T) {
	t.Parallel()

	appointments := []scheduling.Appointment{
		{
			ID:        "a1",
			Date:      "2025-06-10",
			StartTime: "09:00",
			EndTime:   "10:30",
			Title:     "Pare-brise",
			Service:   "Remplacement pare-brise",
			Client:    "O'Brien",
			Status:    scheduling.StatusConfirmed,
			Price:     "420",
		},
		{
			ID:        "a2",
			Date:      "2025-06-10",
			StartTime: "14:00",
			EndTime:   "15:00",
			Client:    `Dit "Bob"`,
			Address:   "12 rue du Port, Nantes",
			Notes:     "ligne 1\nligne 2",
			Status:    scheduling.StatusToConfirm,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, appointments); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := strings.TrimPrefix(buf.String(), "\uFEFF")

	// An apostrophe needs no quoting.
	if !strings.Contains(out, ",O'Brien,") {
		t.Error("apostrophe field must stay unquoted")
	}
	// Embedded quotes are doubled inside a quoted field.
	if !strings.Contains(out, `,"Dit ""Bob""",`) {
		t.Errorf("quote escaping missing in %q", out)
	}
	// A comma forces quoting.
	if !strings.Contains(out, `"12 rue du Port, Nantes"`) {
		t.Error("comma field must be quoted")
	}
	// A newline forces quoting.
	if !strings.Contains(out, "\"ligne 1\nligne 2\"") {
		t.Error("newline field must be quoted")
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("export must not end with a trailing newline")
	}
}

// The quoting rules are the common CSV dialect, so a standard reader must be
// able to round-trip every field.
func TestWriteCSVRoundTrip(t *testing.T) {
	t.Parallel()

	appt := scheduling.Appointment{
		ID:        "a1",
		Date:      "2025-06-10",
		StartTime: "09:00",
		EndTime:   "10:30",
		Title:     `Complex, "title"`,
		Client:    "Mme\nMartin",
		Notes:     `"quoted" start`,
		Status:    scheduling.StatusConfirmed,
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []scheduling.Appointment{appt}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\uFEFF")))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("standard reader rejected the export: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count = %d, want header + 1", len(records))
	}

	row := records[1]
	if len(row) != 17 {
		t.Fatalf("column count = %d, want 17", len(row))
	}
	if row[4] != appt.Title {
		t.Errorf("Title = %q, want %q", row[4], appt.Title)
	}
	if row[6] != appt.Client {
		t.Errorf("Client = %q, want %q", row[6], appt.Client)
	}
	if row[16] != appt.Notes {
		t.Errorf("Notes = %q, want %q", row[16], appt.Notes)
	}
}
