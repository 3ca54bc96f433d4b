package scheduling

import "math"

// Grid describes the visible scheduling window of a day column and the
// quantization applied to drag-based moves. All values are minutes; the day
// window is expressed as minutes from midnight.
type Grid struct {
	DayStartMinutes    int
	DayEndMinutes      int
	SnapMinutes        int
	MinDurationMinutes int
}

// DefaultGrid is the 08:00-18:00 window with a 15-minute snap grid.
func DefaultGrid() Grid {
	return Grid{
		DayStartMinutes:    8 * 60,
		DayEndMinutes:      18 * 60,
		SnapMinutes:        15,
		MinDurationMinutes: 15,
	}
}

// Move is the computed outcome of dropping an appointment onto a resource
// column. The duration of the original appointment is preserved.
type Move struct {
	ResourceID string
	StartTime  string
	EndTime    string
}

// PlanMove computes the new start and end of an appointment dropped onto a
// resource column at rawOffsetMinutes from the top of the visible window.
//
// The offset is snapped to the nearest grid line (never negative), the
// duration is floored at the grid minimum, and the start is clamped so the
// whole appointment fits inside the window: a drop near the bottom edge is
// pulled back until the end lands exactly on the window end.
func (g Grid) PlanMove(appt Appointment, resourceID string, rawOffsetMinutes float64) (Move, error) {
	duration, err := appt.DurationMinutes()
	if err != nil {
		return Move{}, err
	}
	if duration < g.MinDurationMinutes {
		duration = g.MinDurationMinutes
	}

	snapped := int(math.Round(rawOffsetMinutes/float64(g.SnapMinutes))) * g.SnapMinutes
	if snapped < 0 {
		snapped = 0
	}

	start := g.DayStartMinutes + snapped
	if start < g.DayStartMinutes {
		start = g.DayStartMinutes
	}
	if limit := g.DayEndMinutes - duration; start > limit {
		start = limit
	}

	return Move{
		ResourceID: resourceID,
		StartTime:  FormatClock(start),
		EndTime:    FormatClock(start + duration),
	}, nil
}
