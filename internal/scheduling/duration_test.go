package scheduling

import "testing"

func TestCatalogDuration(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()

	cases := []struct {
		service string
		want    int
	}{
		{"Remplacement pare-brise", 90},
		{"Réparation impact", 45},
		{"Remplacement vitre latérale", 75},
		{"Remplacement lunette arrière", 90},
		{"Teinte de vitres", DefaultDurationMinutes},
		{"", DefaultDurationMinutes},
	}

	for _, tc := range cases {
		tc := tc
		if got := catalog.Duration(tc.service); got != tc.want {
			t.Errorf("Duration(%q) = %d, want %d", tc.service, got, tc.want)
		}
	}
}

func TestCatalogDurationIgnoresNonPositiveEntries(t *testing.T) {
	t.Parallel()

	catalog := ServiceCatalog{"broken": 0, "negative": -30}
	if got := catalog.Duration("broken"); got != DefaultDurationMinutes {
		t.Fatalf("Duration(broken) = %d, want fallback", got)
	}
	if got := catalog.Duration("negative"); got != DefaultDurationMinutes {
		t.Fatalf("Duration(negative) = %d, want fallback", got)
	}
}

func TestResolveEndTime(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()

	cases := []struct {
		name        string
		service     string
		date        string
		start       string
		explicitEnd string
		wantEnd     string
		wantRolled  bool
		wantErr     bool
	}{
		{name: "explicit end wins", service: "Remplacement pare-brise", date: "2025-06-10", start: "09:00", explicitEnd: "09:30", wantEnd: "09:30"},
		{name: "derived from catalog", service: "Remplacement pare-brise", date: "2025-06-10", start: "09:00", wantEnd: "10:30"},
		{name: "unknown service falls back to an hour", service: "Polissage", date: "2025-06-10", start: "09:00", wantEnd: "10:00"},
		{name: "derived end rolls past midnight", service: "Remplacement pare-brise", date: "2025-06-10", start: "23:00", wantEnd: "00:30", wantRolled: true},
		{name: "derived end lands exactly on midnight", service: "Polissage", date: "2025-06-10", start: "23:00", wantEnd: "00:00", wantRolled: true},
		{name: "rollover detected across month end", service: "Polissage", date: "2025-06-30", start: "23:30", wantEnd: "00:30", wantRolled: true},
		{name: "malformed start", service: "Polissage", date: "2025-06-10", start: "9h00", wantErr: true},
		{name: "malformed date", service: "Polissage", date: "10/06/2025", start: "09:00", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			end, rolled, err := ResolveEndTime(catalog, tc.service, tc.date, tc.start, tc.explicitEnd)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", end)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if end != tc.wantEnd || rolled != tc.wantRolled {
				t.Fatalf("ResolveEndTime = (%q, %v), want (%q, %v)", end, rolled, tc.wantEnd, tc.wantRolled)
			}
		})
	}
}
