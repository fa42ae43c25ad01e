package utils

import (
	"time"

	"github.com/jinzhu/now"
)

// SyncWindow returns [today, today+days] at UTC day boundaries.
// Stored check-in dates are UTC midnights, so the window must be too,
// and both the fetch and the cancellation sweep must use the same pair.
func SyncWindow(days int) (time.Time, time.Time) {
	start := now.With(time.Now().UTC()).BeginningOfDay()
	end := now.With(start.AddDate(0, 0, days)).BeginningOfDay()
	return start, end
}

// FiscalYearBounds returns the revenue reporting window for a fiscal
// year: March 1st through the last day of the following February.
func FiscalYearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := now.With(start.AddDate(1, 0, -1)).EndOfDay()
	return start, end
}

// DefaultFiscalYear returns the fiscal year a date belongs to
// (January and February count toward the previous year's books).
func DefaultFiscalYear(t time.Time) int {
	if t.Month() < time.March {
		return t.Year() - 1
	}
	return t.Year()
}

// MonthBounds returns the first and last instant of the month
// containing t, in UTC like the stored check-in dates.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	n := now.With(t.UTC())
	return n.BeginningOfMonth(), n.EndOfMonth()
}
