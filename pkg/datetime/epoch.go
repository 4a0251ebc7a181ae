// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/srahimian/huquq/pkg/constants"
)

// ToEpochMillis converts a time to an epoch timestamp in milliseconds, the
// resolution price providers report observations in.
func ToEpochMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

// FromEpochMillis converts an epoch-millisecond timestamp back to a time in
// the local timezone.
func FromEpochMillis(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
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

// ParseFiscalDate parses an "MM-DD" fiscal date and anchors it to the year of
// now, adjusted so the result is the fiscal anniversary that has most
// recently passed: an anchor still in the future is moved back one year.
func ParseFiscalDate(monthDay string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse(constants.FiscalDateLayout, monthDay)
	if err != nil {
		return time.Time{}, err
	}
	anchored := time.Date(now.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, now.Location())
	if anchored.After(now) {
		anchored = anchored.AddDate(-1, 0, 0)
	}
	return anchored, nil
}

// CombineDateTime overlays a clock time onto a date, keeping the date's
// location.
func CombineDateTime(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}
