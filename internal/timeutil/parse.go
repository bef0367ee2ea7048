package timeutil

import (
	"time"

	"upshift/internal/shared/apperror"
)

const dayLayout = "2006-01-02"

// ParseTimestamp parses an RFC3339 timestamp from the backend, with or
// without fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperror.Wrap(err, apperror.CodeParseError, "invalid timestamp "+s)
	}
	return t, nil
}

// ParseDay parses a calendar-day field. The backend sends either a bare day
// or a full timestamp; both resolve to the start of that day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, apperror.Wrap(err, apperror.CodeParseError, "invalid calendar day "+s)
	}
	return StartOfDay(t), nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
