package earnings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"upshift/internal/config"
	"upshift/internal/shift"
)

type fakeShifts struct {
	claims []shift.Claim
	err    error
}

func (f *fakeShifts) Browse(ctx context.Context, start, end time.Time) ([]shift.Shift, error) {
	return nil, nil
}
func (f *fakeShifts) MyShifts(ctx context.Context) ([]shift.Claim, error) {
	return f.claims, f.err
}
func (f *fakeShifts) Claim(ctx context.Context, shiftID string) (shift.Claim, error) {
	return shift.Claim{}, nil
}
func (f *fakeShifts) Unclaim(ctx context.Context, shiftID string) error { return nil }

func claimOn(day time.Time, start, end string) shift.Claim {
	return shift.Claim{
		ID:      "claim-" + day.Format("01-02"),
		ShiftID: "shift-" + day.Format("01-02"),
		Shift: shift.Detail{
			Date:      day,
			StartTime: start,
			EndTime:   end,
			Role:      "server",
		},
	}
}

func TestFetchWeek(t *testing.T) {
	weekStart := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 6)
	now := weekStart.AddDate(0, 0, 4) // mid-week

	f := &fakeShifts{claims: []shift.Claim{
		claimOn(weekStart, "09:00", "17:00"),                   // 8h, past
		claimOn(weekStart.AddDate(0, 0, 2), "10:00", "14:00"),  // 4h, past
		claimOn(weekStart.AddDate(0, 0, 5), "09:00", "17:00"),  // future, excluded
		claimOn(weekStart.AddDate(0, 0, -3), "09:00", "17:00"), // before the week, excluded
	}}

	svc := &service{shifts: f, cfg: config.Default(), logger: zap.NewNop(), now: func() time.Time { return now }}

	shifts, summary, err := svc.FetchWeek(context.Background(), weekStart, weekEnd)
	assert.NoError(t, err)
	assert.Len(t, shifts, 2)

	// Most recent first.
	assert.True(t, shifts[0].Date.After(shifts[1].Date))

	assert.Equal(t, 12.0, summary.TotalHours)
	assert.Equal(t, 12.0*config.DefaultHourlyRate, summary.ProjectedPay)
	assert.Equal(t, 2, summary.ShiftsCount)
	assert.Equal(t, config.DefaultHourlyRate, summary.AverageHourlyRate())
}

func TestFetchWeek_Empty(t *testing.T) {
	svc := NewService(&fakeShifts{}, config.Default())
	shifts, summary, err := svc.FetchWeek(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
	assert.NoError(t, err)
	assert.Empty(t, shifts)
	assert.Equal(t, WeekSummary{}, summary)
	assert.Equal(t, 0.0, summary.AverageHourlyRate())
}

func TestFetchWeek_RemoteError(t *testing.T) {
	svc := NewService(&fakeShifts{err: errors.New("boom")}, config.Default())
	_, _, err := svc.FetchWeek(context.Background(), time.Now(), time.Now())
	assert.Error(t, err)
}

func TestCompletedShift_Derived(t *testing.T) {
	cs := CompletedShift{StartTime: "09:00", EndTime: "17:30", HourlyRate: 20}
	assert.InDelta(t, 8.5, cs.Hours(), 1e-9)
	assert.InDelta(t, 170.0, cs.Pay(), 1e-9)
	assert.Equal(t, "09:00 - 17:30", cs.TimeRange())
	assert.Equal(t, "8.5h", cs.HoursWorkedLabel())

	bad := CompletedShift{StartTime: "morning", EndTime: "17:00", HourlyRate: 20}
	assert.Equal(t, 0.0, bad.Hours())
}
