package shift

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"upshift/internal/geo"
	"upshift/internal/remote"
	"upshift/internal/timeutil"
)

var roleTitle = cases.Title(language.English)

// Shift is a posted shift with its calendar day parsed.
type Shift struct {
	ID             string
	Date           time.Time
	StartTime      string // wall-clock "HH:mm"
	EndTime        string // wall-clock "HH:mm"
	PeopleNeeded   int
	Role           string
	AvailableSpots int
	ClaimedBy      []ClaimedEmployee
	Location       *geo.ShiftLocation
}

func (s Shift) IsClaimed() bool {
	return s.AvailableSpots < s.PeopleNeeded
}

func (s Shift) IsFull() bool {
	return s.AvailableSpots == 0
}

func (s Shift) DisplayRole() string {
	return roleTitle.String(s.Role)
}

type ClaimedEmployee struct {
	ID            string
	ClerkID       string
	EmployeeName  *string
	EmployeeEmail *string
}

// Claim is one worker's reservation of one shift, with the shift snapshot
// taken at claim time.
type Claim struct {
	ID        string
	ShiftID   string
	ClaimedAt time.Time
	Shift     Detail
}

// Detail is the shift snapshot embedded in claims.
type Detail struct {
	ID        string
	Date      time.Time
	StartTime string
	EndTime   string
	Role      string
	Location  *geo.ShiftLocation
}

// FromRecord parses a wire record into a Shift. Fails on a malformed date;
// the caller drops (and logs) such records rather than aborting the fetch.
func FromRecord(rec remote.Shift, defaultRadius float64) (Shift, error) {
	date, err := timeutil.ParseDay(rec.Date)
	if err != nil {
		return Shift{}, err
	}
	claimed := make([]ClaimedEmployee, 0, len(rec.ClaimedBy))
	for _, c := range rec.ClaimedBy {
		claimed = append(claimed, ClaimedEmployee{
			ID:            c.ID,
			ClerkID:       c.ClerkID,
			EmployeeName:  c.EmployeeName,
			EmployeeEmail: c.EmployeeEmail,
		})
	}
	return Shift{
		ID:             rec.ID,
		Date:           date,
		StartTime:      rec.StartTime,
		EndTime:        rec.EndTime,
		PeopleNeeded:   rec.PeopleNeeded,
		Role:           rec.Role,
		AvailableSpots: rec.AvailableSpots,
		ClaimedBy:      claimed,
		Location:       LocationFromRecord(rec.Location, defaultRadius),
	}, nil
}

// ClaimFromRecord parses a wire claim. A malformed claimedAt or shift date
// fails the record.
func ClaimFromRecord(rec remote.ShiftClaim, defaultRadius float64) (Claim, error) {
	claimedAt, err := timeutil.ParseTimestamp(rec.ClaimedAt)
	if err != nil {
		return Claim{}, err
	}
	detail, err := DetailFromRecord(rec.Shift, defaultRadius)
	if err != nil {
		return Claim{}, err
	}
	return Claim{
		ID:        rec.ID,
		ShiftID:   rec.ShiftID,
		ClaimedAt: claimedAt,
		Shift:     detail,
	}, nil
}

func DetailFromRecord(rec remote.ShiftDetail, defaultRadius float64) (Detail, error) {
	date, err := timeutil.ParseDay(rec.Date)
	if err != nil {
		return Detail{}, err
	}
	return Detail{
		ID:        rec.ID,
		Date:      date,
		StartTime: rec.StartTime,
		EndTime:   rec.EndTime,
		Role:      rec.Role,
		Location:  LocationFromRecord(rec.Location, defaultRadius),
	}, nil
}

// LocationFromRecord maps an optional wire location, substituting the
// configured default radius when the backend omits one.
func LocationFromRecord(rec *remote.ShiftLocation, defaultRadius float64) *geo.ShiftLocation {
	if rec == nil {
		return nil
	}
	radius := rec.Radius
	if radius <= 0 {
		radius = defaultRadius
	}
	return &geo.ShiftLocation{
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
		Radius:    radius,
		Address:   rec.Address,
	}
}
