package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 15, cfg.ManagerApprovalThresholdMinutes)
	assert.Equal(t, 100.0, cfg.DefaultProximityRadiusMeters)
	assert.Equal(t, time.Second, cfg.PermissionWait)
	assert.Equal(t, 15.0, cfg.HourlyRate)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("UPSHIFT_GRAPHQL_ENDPOINT", "http://localhost:3000/api/graphql")
	t.Setenv("UPSHIFT_APPROVAL_THRESHOLD_MINUTES", "30")
	t.Setenv("UPSHIFT_DEFAULT_RADIUS_METERS", "250")
	t.Setenv("UPSHIFT_PERMISSION_WAIT", "500ms")

	cfg, err := FromEnv()
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api/graphql", cfg.GraphQLEndpoint)
	assert.Equal(t, 30, cfg.ManagerApprovalThresholdMinutes)
	assert.Equal(t, 250.0, cfg.DefaultProximityRadiusMeters)
	assert.Equal(t, 500*time.Millisecond, cfg.PermissionWait)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultFixTimeout, cfg.FixTimeout)
}

func TestFromEnv_MissingEndpoint(t *testing.T) {
	t.Setenv("UPSHIFT_GRAPHQL_ENDPOINT", "")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_MalformedNumber(t *testing.T) {
	t.Setenv("UPSHIFT_GRAPHQL_ENDPOINT", "http://localhost:3000/api/graphql")
	t.Setenv("UPSHIFT_DEFAULT_RADIUS_METERS", "one hundred")
	_, err := FromEnv()
	assert.Error(t, err)
}
