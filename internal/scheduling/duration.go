package scheduling

// DefaultDurationMinutes applies when a service has no catalog entry.
const DefaultDurationMinutes = 60

// ServiceCatalog maps a service category to its default duration in minutes.
// It is a read-only lookup table; the engine never mutates it.
type ServiceCatalog map[string]int

// DefaultCatalog returns the standard glazing intervention durations.
func DefaultCatalog() ServiceCatalog {
	return ServiceCatalog{
		"Remplacement pare-brise":      90,
		"Réparation impact":            45,
		"Remplacement vitre latérale":  75,
		"Remplacement lunette arrière": 90,
	}
}

// Duration looks up the default duration for a service, falling back to
// DefaultDurationMinutes for unknown categories.
func (c ServiceCatalog) Duration(service string) int {
	if minutes, ok := c[service]; ok && minutes > 0 {
		return minutes
	}
	return DefaultDurationMinutes
}

// ResolveEndTime derives the end time of an appointment. An explicit end is
// returned unchanged; otherwise the catalog duration for the service is added
// to the start on the given date. rolled reports that the derived end landed
// on a later date, which callers must treat as a validation case since
// appointments are same-day records.
func ResolveEndTime(catalog ServiceCatalog, service, date, startTime, explicitEnd string) (end string, rolled bool, err error) {
	if explicitEnd != "" {
		return explicitEnd, false, nil
	}

	endDate, end, err := AddMinutes(date, startTime, catalog.Duration(service))
	if err != nil {
		return "", false, err
	}
	return end, endDate != date, nil
}
