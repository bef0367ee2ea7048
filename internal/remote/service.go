// Package remote is the boundary to the scheduling backend. Records here are
// wire-shaped: timestamps and calendar days stay strings, every optional
// field is a pointer. Feature packages parse them under the drop-and-log
// policy for malformed records.
package remote

import (
	"context"
	"time"
)

// Shift is a posted shift as the backend returns it.
type Shift struct {
	ID             string            `json:"id" validate:"required"`
	Date           string            `json:"date" validate:"required"`
	StartTime      string            `json:"startTime" validate:"required"`
	EndTime        string            `json:"endTime" validate:"required"`
	PeopleNeeded   int               `json:"peopleNeeded" validate:"gte=0"`
	Role           string            `json:"role"`
	AvailableSpots int               `json:"availableSpots" validate:"gte=0,ltefield=PeopleNeeded"`
	ClaimedBy      []ClaimedEmployee `json:"claimedBy"`
	Location       *ShiftLocation    `json:"location"`
}

type ClaimedEmployee struct {
	ID            string  `json:"id"`
	ClerkID       string  `json:"clerkId"`
	EmployeeName  *string `json:"employeeName"`
	EmployeeEmail *string `json:"employeeEmail"`
}

// ShiftDetail is the shift snapshot embedded in claims and time entries.
type ShiftDetail struct {
	ID        string         `json:"id" validate:"required"`
	Date      string         `json:"date" validate:"required"`
	StartTime string         `json:"startTime" validate:"required"`
	EndTime   string         `json:"endTime" validate:"required"`
	Role      string         `json:"role"`
	Location  *ShiftLocation `json:"location"`
}

type ShiftLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
	Address   *string `json:"address"`
}

// ShiftClaim is one worker's reservation of one shift.
type ShiftClaim struct {
	ID        string      `json:"id" validate:"required"`
	ShiftID   string      `json:"shiftId" validate:"required"`
	ClaimedAt string      `json:"claimedAt" validate:"required"`
	Shift     ShiftDetail `json:"shift"`
}

// TimeEntry is a clock-in/out record. ShiftID is optional: a clock-in may
// happen without a pre-claimed shift. HoursWorked is server-computed and
// passed through verbatim, never recomputed locally.
type TimeEntry struct {
	ID                string       `json:"id" validate:"required"`
	ShiftID           *string      `json:"shiftId"`
	Shift             *ShiftDetail `json:"shift"`
	ClerkID           string       `json:"clerkId"`
	ClockInTime       string       `json:"clockInTime" validate:"required"`
	ClockOutTime      *string      `json:"clockOutTime"`
	ClockInLatitude   *float64     `json:"clockInLatitude"`
	ClockInLongitude  *float64     `json:"clockInLongitude"`
	ClockOutLatitude  *float64     `json:"clockOutLatitude"`
	ClockOutLongitude *float64     `json:"clockOutLongitude"`
	HoursWorked       *float64     `json:"hoursWorked"`
}

// ClockStatus reports whether the worker currently has an open time entry.
type ClockStatus struct {
	IsClockedIn bool       `json:"isClockedIn"`
	ActiveEntry *TimeEntry `json:"activeEntry"`
}

// Service is the remote collaborator. Every call is a network round-trip
// that may fail; failures are opaque and surfaced with their message.
//
//go:generate mockgen -source=service.go -destination=mock/service_mock.go -package=mock
type Service interface {
	ListShifts(ctx context.Context, start, end time.Time) ([]Shift, error)
	ListMyShifts(ctx context.Context) ([]ShiftClaim, error)
	ListMyTimeEntries(ctx context.Context, start, end time.Time) ([]TimeEntry, error)
	ClockStatus(ctx context.Context) (ClockStatus, error)
	ClaimShift(ctx context.Context, shiftID string) (ShiftClaim, error)
	UnclaimShift(ctx context.Context, shiftID string) (bool, error)
	ClockIn(ctx context.Context, shiftID *string, lat, lon *float64) (TimeEntry, error)
	ClockOut(ctx context.Context, lat, lon *float64) (TimeEntry, error)
}
