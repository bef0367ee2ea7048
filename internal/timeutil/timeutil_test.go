package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCombineDateAndWallClock(t *testing.T) {
	date := time.Date(2025, time.December, 3, 17, 45, 12, 0, time.UTC)

	combined, err := CombineDateAndWallClock(date, "09:30")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.December, 3, 9, 30, 0, 0, time.UTC), combined)

	// Round-trip: extracting the wall clock back out yields the original.
	assert.Equal(t, 9, combined.Hour())
	assert.Equal(t, 30, combined.Minute())
}

func TestCombineDateAndWallClock_Invalid(t *testing.T) {
	date := time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC)

	for _, bad := range []string{"", "9am", "25:00", "09:61", "0930"} {
		_, err := CombineDateAndWallClock(date, bad)
		assert.Error(t, err, bad)
	}
}

func TestScheduledDurationHours(t *testing.T) {
	h, err := ScheduledDurationHours("09:00", "17:00")
	assert.NoError(t, err)
	assert.Equal(t, 8.0, h)

	h, err = ScheduledDurationHours("10:15", "10:45")
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, h, 1e-9)
}

func TestScheduledDurationHours_Overnight(t *testing.T) {
	// End before start is a documented limitation: the duration goes
	// negative instead of wrapping past midnight.
	h, err := ScheduledDurationHours("22:00", "06:00")
	assert.NoError(t, err)
	assert.Equal(t, -16.0, h)
}

func TestScheduledDurationHours_Invalid(t *testing.T) {
	_, err := ScheduledDurationHours("nine", "17:00")
	assert.Error(t, err)
	_, err = ScheduledDurationHours("09:00", "five")
	assert.Error(t, err)
}

func TestTimingDelta(t *testing.T) {
	date := time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) *time.Time {
		ts := time.Date(2025, time.December, 3, h, m, 0, 0, time.UTC)
		return &ts
	}

	tests := []struct {
		name      string
		actual    *time.Time
		scheduled string
		early     *int
		late      *int
	}{
		{"nil actual", nil, "09:00", nil, nil},
		{"exactly on time", at(9, 0), "09:00", nil, nil},
		{"ten minutes late", at(9, 10), "09:00", nil, intp(10)},
		{"ten minutes early", at(8, 50), "09:00", intp(10), nil},
		{"unparseable schedule", at(9, 10), "nine", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			early, late := TimingDelta(tc.actual, tc.scheduled, date)
			assert.Equal(t, tc.early, early)
			assert.Equal(t, tc.late, late)
			// Never both sides at once, and any value is positive.
			assert.False(t, early != nil && late != nil)
			if early != nil {
				assert.Greater(t, *early, 0)
			}
			if late != nil {
				assert.Greater(t, *late, 0)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-12-03")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDay("2025-12-03T14:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 3, d.Day())

	_, err = ParseDay("12/03/2025")
	assert.Error(t, err)
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, time.December, 3, 1, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.December, 3, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func intp(v int) *int { return &v }
