package earnings

import (
	"fmt"
	"time"

	"upshift/internal/timeutil"
)

// CompletedShift is a past claimed shift priced at an hourly rate.
type CompletedShift struct {
	ID         string
	Date       time.Time
	StartTime  string
	EndTime    string
	Role       string
	HourlyRate float64
}

// Hours returns the scheduled length of the shift; malformed wall-clock
// times count as zero hours.
func (s CompletedShift) Hours() float64 {
	h, err := timeutil.ScheduledDurationHours(s.StartTime, s.EndTime)
	if err != nil {
		return 0
	}
	return h
}

func (s CompletedShift) Pay() float64 {
	return s.Hours() * s.HourlyRate
}

func (s CompletedShift) TimeRange() string {
	return s.StartTime + " - " + s.EndTime
}

func (s CompletedShift) HoursWorkedLabel() string {
	return fmt.Sprintf("%.1fh", s.Hours())
}

// WeekSummary aggregates one week of completed shifts.
type WeekSummary struct {
	TotalHours   float64
	ProjectedPay float64
	ShiftsCount  int
}

func (w WeekSummary) AverageHourlyRate() float64 {
	if w.TotalHours <= 0 {
		return 0
	}
	return w.ProjectedPay / w.TotalHours
}
