// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/fund-forecast/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// OffsetMonths returns the date offset by the given number of months.
func OffsetMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// Normalize truncates a timestamp to UTC midnight. The solver compares dates,
// not times of day, so all flows are normalized before year fractions are
// taken.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// YearFraction returns the Actual/365.25 year fraction between start and t.
func YearFraction(start, t time.Time) float64 {
	days := Normalize(t).Sub(Normalize(start)).Hours() / 24
	return days / constants.DaysPerYear
}

// PeriodBounds returns the start and end dates of period index idx for a
// simulation beginning at fundStart with periods of periodMonths each. The end
// date is the day before the next period begins.
func PeriodBounds(fundStart time.Time, periodMonths, idx int) (start, end time.Time) {
	start = OffsetMonths(fundStart, idx*periodMonths)
	end = OffsetMonths(fundStart, (idx+1)*periodMonths).AddDate(0, 0, -1)
	return start, end
}

// ElapsedMonths returns the number of whole months covered by periods 0..idx.
func ElapsedMonths(periodMonths, idx int) int {
	return (idx + 1) * periodMonths
}

// ElapsedYears returns the number of whole years elapsed at the start of
// period idx.
func ElapsedYears(periodMonths, idx int) int {
	return idx * periodMonths / constants.MonthsPerYear
}
