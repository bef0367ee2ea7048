// Package timeutil projects "HH:mm" wall-clock strings onto calendar days and
// computes the scheduled-vs-actual deltas the check-in flow is built on.
package timeutil

import (
	"time"

	"upshift/internal/shared/apperror"
)

const wallClockLayout = "15:04"

// ParseWallClock parses a strict 24-hour "HH:mm" string.
func ParseWallClock(s string) (hour, minute int, err error) {
	t, perr := time.Parse(wallClockLayout, s)
	if perr != nil {
		return 0, 0, apperror.Wrap(perr, apperror.CodeParseError, "invalid wall-clock time "+s)
	}
	return t.Hour(), t.Minute(), nil
}

// CombineDateAndWallClock projects wallClock onto the year/month/day of date,
// in date's location.
func CombineDateAndWallClock(date time.Time, wallClock string) (time.Time, error) {
	hour, minute, err := ParseWallClock(wallClock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// ScheduledDurationHours returns the scheduled length of a shift in hours,
// computed on a common reference date.
//
// Shifts spanning midnight are not handled: an end time numerically before
// the start yields a negative duration. Pending product clarification.
func ScheduledDurationHours(start, end string) (float64, error) {
	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	s, err := CombineDateAndWallClock(ref, start)
	if err != nil {
		return 0, err
	}
	e, err := CombineDateAndWallClock(ref, end)
	if err != nil {
		return 0, err
	}
	return e.Sub(s).Hours(), nil
}

// TimingDelta compares an actual timestamp against a scheduled wall-clock
// time on date. Exactly one of (early, late) is non-nil when actual differs
// from the schedule by a whole minute or more; both are nil when actual is
// nil, on time, or the schedule fails to parse.
func TimingDelta(actual *time.Time, scheduled string, date time.Time) (early, late *int) {
	if actual == nil {
		return nil, nil
	}
	at, err := CombineDateAndWallClock(date, scheduled)
	if err != nil {
		return nil, nil
	}
	minutes := int(actual.Sub(at).Minutes())
	switch {
	case minutes < 0:
		m := -minutes
		return &m, nil
	case minutes > 0:
		return nil, &minutes
	default:
		return nil, nil
	}
}
