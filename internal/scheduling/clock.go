package scheduling

import (
	"fmt"
	"time"
)

const (
	minutesPerDay = 24 * 60

	dateLayout = "2006-01-02"
)

// FormatError reports a malformed clock time or calendar date. The engine
// never attempts silent correction; callers decide how to surface it.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time value %q", e.Value)
}

// ParseClock converts a strict "HH:MM" string into minutes since midnight.
// Only two-digit hour and minute groups separated by a colon are accepted.
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, &FormatError{Value: value}
	}
	hours, ok1 := twoDigits(value[0], value[1])
	minutes, ok2 := twoDigits(value[3], value[4])
	if !ok1 || !ok2 || hours > 23 || minutes > 59 {
		return 0, &FormatError{Value: value}
	}
	return hours*60 + minutes, nil
}

func twoDigits(hi, lo byte) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}
	return int(hi-'0')*10 + int(lo-'0'), true
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
// Values outside [0, 1440) are a contract violation: callers clamp or wrap
// before formatting, the function never does it for them.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CompactClock strips the colon from a clock time, yielding the sortable
// "HHMM" encoding. For valid zero-padded times lexicographic order on the
// result matches minute order, so interval comparisons can stay on strings.
func CompactClock(clock string) string {
	if len(clock) == 5 && clock[2] == ':' {
		return clock[:2] + clock[3:]
	}
	return clock
}

// ParseDate validates an ISO calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &FormatError{Value: value}
	}
	return t, nil
}

// AddMinutes advances a date + clock time pair by the given number of
// minutes, carrying across day boundaries in either direction.
func AddMinutes(date, clock string, minutes int) (string, string, error) {
	day, err := ParseDate(date)
	if err != nil {
		return "", "", err
	}
	start, err := ParseClock(clock)
	if err != nil {
		return "", "", err
	}

	total := start + minutes
	dayShift := total / minutesPerDay
	remainder := total % minutesPerDay
	if remainder < 0 {
		remainder += minutesPerDay
		dayShift--
	}

	shifted := day.AddDate(0, 0, dayShift)
	return shifted.Format(dateLayout), FormatClock(remainder), nil
}
