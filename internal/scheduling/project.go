package scheduling

import (
	"sort"
	"strings"
)

// StatusAny matches every status in a Filter.
const StatusAny Status = ""

// Filter narrows the appointment set for list and day views. Zero values
// match everything.
type Filter struct {
	Date   string
	Status Status
	Search string
}

// Project filters and sorts appointments into the deterministic order
// consumed by presentation: ascending on the combined date + start time key,
// with the id as a final tie break. The input slice is not modified, and
// identical inputs always produce identical sequences.
func Project(appointments []Appointment, filter Filter) []Appointment {
	needle := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if filter.Date != "" && appt.Date != filter.Date {
			continue
		}
		if filter.Status != StatusAny && appt.Status != filter.Status {
			continue
		}
		if needle != "" && !strings.Contains(searchHaystack(appt), needle) {
			continue
		}
		out = append(out, appt)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ki := out[i].Date + out[i].StartTime
		kj := out[j].Date + out[j].StartTime
		if ki == kj {
			return out[i].ID < out[j].ID
		}
		return ki < kj
	})

	return out
}

func searchHaystack(a Appointment) string {
	return strings.ToLower(a.Title + a.Client + a.Phone + a.Address + a.Insurer + a.ClaimNumber + a.Service)
}

// GroupByDate re-indexes an already sorted sequence into per-date buckets,
// preserving the sorted order inside each bucket. The returned keys are the
// distinct dates in ascending order.
func GroupByDate(sorted []Appointment) (map[string][]Appointment, []string) {
	grouped := make(map[string][]Appointment)
	keys := make([]string, 0)
	for _, appt := range sorted {
		if _, seen := grouped[appt.Date]; !seen {
			keys = append(keys, appt.Date)
		}
		grouped[appt.Date] = append(grouped[appt.Date], appt)
	}
	sort.Strings(keys)
	return grouped, keys
}

// GroupByResource builds the per-column buckets of the day view. Every id in
// resourceIDs gets a bucket; appointments whose resource is unknown or
// unassigned land in the ResourceUnassigned bucket. Buckets are sorted by
// start time.
func GroupByResource(appointments []Appointment, date string, resourceIDs []string) map[string][]Appointment {
	buckets := make(map[string][]Appointment, len(resourceIDs)+1)
	for _, id := range resourceIDs {
		buckets[id] = nil
	}
	buckets[ResourceUnassigned] = nil

	for _, appt := range appointments {
		if appt.Date != date {
			continue
		}
		key := appt.ResourceID
		if _, known := buckets[key]; !known {
			key = ResourceUnassigned
		}
		buckets[key] = append(buckets[key], appt)
	}

	for key, list := range buckets {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].StartTime < list[j].StartTime
		})
		buckets[key] = list
	}

	return buckets
}
