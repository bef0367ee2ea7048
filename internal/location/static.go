package location

import (
	"context"

	"upshift/internal/geo"
)

// Static is a Provider pinned to one coordinate with a fixed authorization
// status. It stands in for a device sensor in the CLI and in tests.
type Static struct {
	Coordinate geo.Coordinate
	Status     AuthorizationStatus
}

func NewStatic(coord geo.Coordinate) *Static {
	return &Static{Coordinate: coord, Status: AuthorizationAlways}
}

func (s *Static) AuthorizationStatus() AuthorizationStatus {
	return s.Status
}

func (s *Static) RequestAuthorization() {
	if s.Status == AuthorizationNotDetermined {
		s.Status = AuthorizationWhenInUse
	}
}

func (s *Static) CurrentFix(ctx context.Context) (geo.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinate{}, err
	}
	return s.Coordinate, nil
}
