// Package today reconciles shift claims, time entries and live location into
// the check-in/check-out flow.
package today

import (
	"time"

	"upshift/internal/geo"
	"upshift/internal/shift"
)

type CheckInStatus string

const (
	StatusNotStarted CheckInStatus = "NOT_STARTED"
	StatusCheckedIn  CheckInStatus = "CHECKED_IN"
	StatusCompleted  CheckInStatus = "COMPLETED"
)

func (s CheckInStatus) DisplayName() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusCheckedIn:
		return "Checked In"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// CheckInOutRecord is a time entry enriched with scheduled-vs-actual timing.
// Derived on every fetch, never persisted.
type CheckInOutRecord struct {
	ID                      string
	ShiftClaimID            string
	CheckInTime             *time.Time
	CheckOutTime            *time.Time
	CheckInLatitude         *float64
	CheckInLongitude        *float64
	CheckOutLatitude        *float64
	CheckOutLongitude       *float64
	Status                  CheckInStatus
	RequiresManagerApproval bool

	// Exactly one of each early/late pair is set when the worker was off
	// schedule by a whole minute or more.
	EarlyCheckInMinutes  *int
	LateCheckInMinutes   *int
	EarlyCheckOutMinutes *int
	LateCheckOutMinutes  *int

	// ActualHoursWorked is the server-computed figure, passed through
	// verbatim.
	ActualHoursWorked *float64
	ScheduledHours    float64
}

func (r CheckInOutRecord) IsEarlyCheckIn() bool {
	return r.EarlyCheckInMinutes != nil && *r.EarlyCheckInMinutes > 0
}

func (r CheckInOutRecord) IsLateCheckIn() bool {
	return r.LateCheckInMinutes != nil && *r.LateCheckInMinutes > 0
}

func (r CheckInOutRecord) IsEarlyCheckOut() bool {
	return r.EarlyCheckOutMinutes != nil && *r.EarlyCheckOutMinutes > 0
}

func (r CheckInOutRecord) IsLateCheckOut() bool {
	return r.LateCheckOutMinutes != nil && *r.LateCheckOutMinutes > 0
}

// TodayShift pairs one claim with its (optional) check-in record and the
// shift's geofence. Rebuilt from source records on every fetch, never
// mutated in place.
type TodayShift struct {
	ID       string
	Claim    shift.Claim
	Record   *CheckInOutRecord
	Location *geo.ShiftLocation
}

func (t TodayShift) CanCheckIn() bool {
	if t.Record == nil {
		return true
	}
	return t.Record.CheckInTime == nil
}

// CanCheckOut derives strictly from the latest fetched entry, never from
// client-side optimism: a check-in must have landed remotely first.
func (t TodayShift) CanCheckOut() bool {
	if t.Record == nil {
		return false
	}
	return t.Record.CheckInTime != nil && t.Record.CheckOutTime == nil
}

func (t TodayShift) IsCheckedIn() bool {
	return t.Record != nil && t.Record.CheckInTime != nil && t.Record.CheckOutTime == nil
}

func (t TodayShift) IsCompleted() bool {
	return t.Record != nil && (t.Record.Status == StatusCompleted || t.Record.CheckOutTime != nil)
}

func (t TodayShift) Status() CheckInStatus {
	if t.Record == nil {
		return StatusNotStarted
	}
	return t.Record.Status
}
