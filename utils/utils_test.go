package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncWindowSpansRequestedDays(t *testing.T) {
	start, end := SyncWindow(365)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, end.Hour())
	assert.Equal(t, start.AddDate(0, 0, 365).Format("2006-01-02"), end.Format("2006-01-02"))
}

func TestSyncWindowUsesUTCDayBoundaries(t *testing.T) {
	// Check-in dates parse to UTC midnights; a window built in another
	// zone would miss them at the edges.
	start, end := SyncWindow(90)

	assert.Equal(t, time.UTC, start.Location())
	assert.Equal(t, time.UTC, end.Location())
}

func TestFiscalYearBounds(t *testing.T) {
	start, end := FiscalYearBounds(2024)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2025, end.Year())
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 28, end.Day())
	assert.Equal(t, 23, end.Hour())

	// 2023-24 ends in a leap February.
	_, leapEnd := FiscalYearBounds(2023)
	assert.Equal(t, 29, leapEnd.Day())
}

func TestDefaultFiscalYear(t *testing.T) {
	assert.Equal(t, 2024, DefaultFiscalYear(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2024, DefaultFiscalYear(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, DefaultFiscalYear(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, DefaultFiscalYear(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2025, time.April, 17, 13, 45, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 30, end.Day())
	assert.Equal(t, time.April, end.Month())
}
