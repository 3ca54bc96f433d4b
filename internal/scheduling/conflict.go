package scheduling

// Conflict identifies an existing appointment whose interval overlaps a
// candidate on the same date and resource. Callers present it to the
// operator; no ordering is guaranteed when several overlaps exist.
type Conflict struct {
	WithID     string
	ResourceID string
	Date       string
}

// FindConflict scans the existing set for an appointment that overlaps the
// candidate on the same date and resource. excludeID skips the prior version
// of a record being edited so it never conflicts with itself.
//
// Unassigned candidates are never in conflict: the unassigned bucket is a
// parking column, not a bookable resource.
func FindConflict(candidate Appointment, existing []Appointment, excludeID string) (Conflict, bool) {
	if candidate.ResourceID == ResourceUnassigned {
		return Conflict{}, false
	}

	start := CompactClock(candidate.StartTime)
	end := CompactClock(candidate.EndTime)

	for _, other := range existing {
		if excludeID != "" && other.ID == excludeID {
			continue
		}
		if other.Date != candidate.Date || other.ResourceID != candidate.ResourceID {
			continue
		}
		if overlaps(start, end, CompactClock(other.StartTime), CompactClock(other.EndTime)) {
			return Conflict{WithID: other.ID, ResourceID: other.ResourceID, Date: other.Date}, true
		}
	}

	return Conflict{}, false
}

// HasConflict reports whether FindConflict would find any overlap.
func HasConflict(candidate Appointment, existing []Appointment, excludeID string) bool {
	_, found := FindConflict(candidate, existing, excludeID)
	return found
}

// overlaps applies half-open interval semantics to compact "HHMM" encodings.
// Lexicographic comparison is equivalent to minute comparison for valid
// zero-padded times.
func overlaps(s1, e1, s2, e2 string) bool {
	return !(e1 <= s2 || s1 >= e2)
}
