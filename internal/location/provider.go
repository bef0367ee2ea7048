// Package location abstracts the device location sensor behind a small
// provider interface and adds the policy the clock pipelines need: one
// outstanding fix at a time and a bounded wait on permission prompts.
package location

import (
	"context"

	"upshift/internal/geo"
)

type AuthorizationStatus int

const (
	AuthorizationNotDetermined AuthorizationStatus = iota
	AuthorizationDenied
	AuthorizationRestricted
	AuthorizationWhenInUse
	AuthorizationAlways
)

func (s AuthorizationStatus) String() string {
	switch s {
	case AuthorizationNotDetermined:
		return "not_determined"
	case AuthorizationDenied:
		return "denied"
	case AuthorizationRestricted:
		return "restricted"
	case AuthorizationWhenInUse:
		return "authorized_when_in_use"
	case AuthorizationAlways:
		return "authorized_always"
	default:
		return "unknown"
	}
}

// Granted reports whether the status allows location fixes.
func (s AuthorizationStatus) Granted() bool {
	return s == AuthorizationWhenInUse || s == AuthorizationAlways
}

//go:generate mockgen -source=provider.go -destination=mock/provider_mock.go -package=mock
type Provider interface {
	// AuthorizationStatus returns the current permission state.
	AuthorizationStatus() AuthorizationStatus

	// RequestAuthorization prompts the user. Non-blocking; the answer shows
	// up in AuthorizationStatus eventually.
	RequestAuthorization()

	// CurrentFix resolves a single current-location fix. It must honor ctx
	// cancellation and may fail or time out.
	CurrentFix(ctx context.Context) (geo.Coordinate, error)
}
