package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthTotals carries per-month appointment count and revenue.
type MonthTotals struct {
	Count   int
	Revenue float64
}

// YearSummary groups a year's appointments by date and month. Revenue sums
// the numeric value of each Price field; empty or non-numeric prices count
// as zero. Summaries are always recomputed from the committed set.
type YearSummary struct {
	Year    int
	ByDate  map[string]int
	ByMonth map[string]MonthTotals
}

// AggregateYear rolls up the appointments falling in the given year.
func AggregateYear(year int, appointments []Appointment) YearSummary {
	summary := YearSummary{
		Year:    year,
		ByDate:  make(map[string]int),
		ByMonth: make(map[string]MonthTotals),
	}

	for _, appt := range appointments {
		if len(appt.Date) < 7 {
			continue
		}
		if y, err := strconv.Atoi(appt.Date[:4]); err != nil || y != year {
			continue
		}

		summary.ByDate[appt.Date]++

		month := appt.Date[:7] // YYYY-MM
		totals := summary.ByMonth[month]
		totals.Count++
		totals.Revenue += priceValue(appt.Price)
		summary.ByMonth[month] = totals
	}

	return summary
}

func priceValue(price string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return 0
	}
	return value
}

// MonthGrid describes the shape of a 7-column Monday-first month rendering:
// how many leading blank cells precede day 1 and how many days the month
// has. It depends only on the calendar, never on appointments.
type MonthGrid struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Days          int
}

// Key returns the "YYYY-MM" identifier matching YearSummary.ByMonth.
func (g MonthGrid) Key() string {
	return fmt.Sprintf("%04d-%02d", g.Year, int(g.Month))
}

// MonthGridFor computes the grid metadata for one month.
func MonthGridFor(year int, month time.Month) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return MonthGrid{
		Year:          year,
		Month:         month,
		LeadingBlanks: (int(first.Weekday()) + 6) % 7, // Monday-indexed
		Days:          first.AddDate(0, 1, -1).Day(),
	}
}

// YearGrids returns the twelve month grids of a year in calendar order.
func YearGrids(year int) []MonthGrid {
	grids := make([]MonthGrid, 0, 12)
	for month := time.January; month <= time.December; month++ {
		grids = append(grids, MonthGridFor(year, month))
	}
	return grids
}
