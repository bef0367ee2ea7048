package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"upshift/internal/shared/apperror"
)

// Defaults for the tunables the product has not made configurable in the UI
// yet. The approval threshold and proximity radius mirror the server's own
// policy; changing one side without the other produces confusing prompts.
const (
	DefaultManagerApprovalThresholdMinutes = 15
	DefaultProximityRadiusMeters           = 100.0
	DefaultPermissionWait                  = 1 * time.Second
	DefaultFixTimeout                      = 10 * time.Second
	DefaultRemoteRequestsPerSecond         = 5.0
	DefaultHourlyRate                      = 15.0
)

type Config struct {
	// GraphQLEndpoint is the remote collaborator's URL.
	GraphQLEndpoint string `validate:"required,url"`

	// SessionToken is the identity provider's session JWT, if any.
	SessionToken string

	// ManagerApprovalThresholdMinutes: late check-ins or early check-outs
	// beyond this many minutes are flagged for manager approval.
	ManagerApprovalThresholdMinutes int `validate:"gte=0"`

	// DefaultProximityRadiusMeters applies when a shift location carries no
	// radius of its own.
	DefaultProximityRadiusMeters float64 `validate:"gt=0"`

	// PermissionWait bounds how long a check-in waits for the user to answer
	// a location permission prompt.
	PermissionWait time.Duration `validate:"gt=0"`

	// FixTimeout bounds a single current-location fix request.
	FixTimeout time.Duration `validate:"gt=0"`

	// RemoteRequestsPerSecond throttles calls to the collaborator.
	RemoteRequestsPerSecond float64 `validate:"gt=0"`

	// HourlyRate prices completed shifts in earnings summaries until the
	// server starts returning per-role rates.
	HourlyRate float64 `validate:"gte=0"`
}

func Default() Config {
	return Config{
		ManagerApprovalThresholdMinutes: DefaultManagerApprovalThresholdMinutes,
		DefaultProximityRadiusMeters:    DefaultProximityRadiusMeters,
		PermissionWait:                  DefaultPermissionWait,
		FixTimeout:                      DefaultFixTimeout,
		RemoteRequestsPerSecond:         DefaultRemoteRequestsPerSecond,
		HourlyRate:                      DefaultHourlyRate,
	}
}

// FromEnv builds a Config from environment variables on top of the defaults.
// Unset variables keep their default; malformed numeric values are an error
// rather than a silent fallback.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.GraphQLEndpoint = os.Getenv("UPSHIFT_GRAPHQL_ENDPOINT")
	cfg.SessionToken = os.Getenv("UPSHIFT_SESSION_TOKEN")

	if err := overrideInt(&cfg.ManagerApprovalThresholdMinutes, "UPSHIFT_APPROVAL_THRESHOLD_MINUTES"); err != nil {
		return Config{}, err
	}
	if err := overrideFloat(&cfg.DefaultProximityRadiusMeters, "UPSHIFT_DEFAULT_RADIUS_METERS"); err != nil {
		return Config{}, err
	}
	if err := overrideDuration(&cfg.PermissionWait, "UPSHIFT_PERMISSION_WAIT"); err != nil {
		return Config{}, err
	}
	if err := overrideDuration(&cfg.FixTimeout, "UPSHIFT_FIX_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if err := overrideFloat(&cfg.RemoteRequestsPerSecond, "UPSHIFT_REMOTE_RPS"); err != nil {
		return Config{}, err
	}
	if err := overrideFloat(&cfg.HourlyRate, "UPSHIFT_HOURLY_RATE"); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, "invalid configuration")
	}
	return nil
}

func overrideInt(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, key+" must be an integer")
	}
	*dst = v
	return nil
}

func overrideFloat(dst *float64, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, key+" must be a number")
	}
	*dst = v
	return nil
}

func overrideDuration(dst *time.Duration, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, key+" must be a duration like 1s or 500ms")
	}
	*dst = v
	return nil
}
