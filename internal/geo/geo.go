// Package geo decides whether a worker is close enough to a shift's location
// to clock in. Pure math, no sensors, no I/O.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusMeters is the mean earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// ShiftLocation is the geofence attached to a shift.
type ShiftLocation struct {
	Latitude  float64
	Longitude float64
	Radius    float64 // meters
	Address   *string
}

func (l ShiftLocation) Coordinate() Coordinate {
	return Coordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Verification is the outcome of a proximity check.
type Verification struct {
	IsWithinRadius bool
	DistanceMeters float64
	UserLatitude   float64
	UserLongitude  float64
}

// DistanceDescription renders the distance for user-facing messages.
func (v Verification) DistanceDescription() string {
	return FormatDistance(v.DistanceMeters) + " away"
}

// Distance returns the great-circle distance between two coordinates in
// meters (haversine).
func Distance(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Verify checks user against the shift's geofence. The boundary is
// inclusive: standing exactly on the radius counts as within.
func Verify(user Coordinate, target ShiftLocation) Verification {
	d := Distance(user, target.Coordinate())
	return Verification{
		IsWithinRadius: d <= target.Radius,
		DistanceMeters: d,
		UserLatitude:   user.Latitude,
		UserLongitude:  user.Longitude,
	}
}

// FormatDistance renders meters below 1km as whole meters and everything
// else as kilometers with one decimal.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(meters))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
