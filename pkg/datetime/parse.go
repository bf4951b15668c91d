// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
)

const (
	// DateLayout is the format expected for start dates.
	DateLayout = constants.DateLayout
)

// spanishMonths holds the short month names used in schedule labels.
var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseStartDate parses a YYYY-MM-DD start date. An empty string yields the
// date portion of now.
func ParseStartDate(value string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Midnight(now), nil
	}
	t, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", value, err)
	}
	return t, nil
}

// Midnight truncates t to the start of its calendar day in its own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OffsetMonths returns the date the given number of months after start.
// Day overflow normalizes forward, so Jan 31 plus one month is early March.
func OffsetMonths(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0)
}

// MonthLabel renders a date as a Spanish short month and year, e.g. "nov 2026".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", spanishMonths[t.Month()-1], t.Year())
}

// InstallmentLabel labels the installment due the given number of months
// after start.
func InstallmentLabel(start time.Time, months int) string {
	return MonthLabel(OffsetMonths(start, months))
}
