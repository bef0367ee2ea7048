package remote

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/machinebox/graphql"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"upshift/internal/identity"
	"upshift/internal/shared/apperror"
	"upshift/internal/shared/contextutil"
)

// Operation documents. Field selections match the backend schema.
const (
	getShiftsQuery = `query GetShifts($startDate: DateTime, $endDate: DateTime) {
  shifts(startDate: $startDate, endDate: $endDate) {
    id date startTime endTime peopleNeeded role availableSpots
    claimedBy { id clerkId employeeName employeeEmail }
    location { latitude longitude radius address }
  }
}`

	getMyShiftsQuery = `query GetMyShifts {
  myShifts {
    id shiftId claimedAt
    shift { id date startTime endTime role location { latitude longitude radius address } }
  }
}`

	getMyTimeEntriesQuery = `query GetMyTimeEntries($startDate: DateTime, $endDate: DateTime) {
  myTimeEntries(startDate: $startDate, endDate: $endDate) {
    id shiftId clerkId clockInTime clockOutTime
    clockInLatitude clockInLongitude clockOutLatitude clockOutLongitude hoursWorked
    shift { id date startTime endTime role location { latitude longitude radius address } }
  }
}`

	getClockStatusQuery = `query GetClockStatus {
  clockStatus {
    isClockedIn
    activeEntry {
      id shiftId clerkId clockInTime clockOutTime
      clockInLatitude clockInLongitude clockOutLatitude clockOutLongitude hoursWorked
    }
  }
}`

	claimShiftMutation = `mutation ClaimShift($shiftId: ID!) {
  claimShift(shiftId: $shiftId) {
    id shiftId claimedAt
    shift { id date startTime endTime role location { latitude longitude radius address } }
  }
}`

	unclaimShiftMutation = `mutation UnclaimShift($shiftId: ID!) {
  unclaimShift(shiftId: $shiftId)
}`

	clockInMutation = `mutation ClockIn($shiftId: ID, $latitude: Float, $longitude: Float) {
  clockIn(shiftId: $shiftId, latitude: $latitude, longitude: $longitude) {
    id shiftId clerkId clockInTime clockOutTime
    clockInLatitude clockInLongitude clockOutLatitude clockOutLongitude hoursWorked
  }
}`

	clockOutMutation = `mutation ClockOut($latitude: Float, $longitude: Float) {
  clockOut(latitude: $latitude, longitude: $longitude) {
    id shiftId clerkId clockInTime clockOutTime
    clockInLatitude clockInLongitude clockOutLatitude clockOutLongitude hoursWorked
  }
}`
)

// GraphQLService implements Service over the backend's GraphQL endpoint.
// It is injected into consumers rather than held as a shared singleton so
// tests can substitute a fake.
type GraphQLService struct {
	client   *graphql.Client
	session  identity.Provider
	limiter  *rate.Limiter
	validate *validator.Validate
	logger   *zap.Logger
}

func NewGraphQLService(endpoint string, session identity.Provider, requestsPerSecond float64, logger ...*zap.Logger) *GraphQLService {
	l := zap.L().Named("remote.graphql")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("remote.graphql")
	}
	return &GraphQLService{
		client:   graphql.NewClient(endpoint),
		session:  session,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		validate: validator.New(),
		logger:   l,
	}
}

func (g *GraphQLService) run(ctx context.Context, operation, doc string, vars map[string]interface{}, out interface{}) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	req := graphql.NewRequest(doc)
	for k, v := range vars {
		req.Var(k, v)
	}
	if token, err := g.session.SessionToken(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	err := g.client.Run(ctx, req, out)
	// A clock pipeline stores its request-scoped logger in ctx; outside a
	// pipeline this falls back to the global logger.
	contextutil.GetLogger(ctx).Debug("graphql operation finished",
		zap.String("operation", operation),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		// machinebox prefixes server-side errors with "graphql: "; strip it
		// so the user sees the backend's message verbatim.
		msg := strings.TrimPrefix(err.Error(), "graphql: ")
		return apperror.Wrap(err, apperror.CodeRemoteError, msg)
	}
	return nil
}

func (g *GraphQLService) ListShifts(ctx context.Context, start, end time.Time) ([]Shift, error) {
	var resp struct {
		Shifts []Shift `json:"shifts"`
	}
	vars := map[string]interface{}{
		"startDate": start.UTC().Format(time.RFC3339),
		"endDate":   end.UTC().Format(time.RFC3339),
	}
	if err := g.run(ctx, "GetShifts", getShiftsQuery, vars, &resp); err != nil {
		return nil, err
	}
	shifts := make([]Shift, 0, len(resp.Shifts))
	for _, s := range resp.Shifts {
		if err := g.validate.Struct(s); err != nil {
			g.logger.Warn("dropping malformed shift record", zap.String("shift_id", s.ID), zap.Error(err))
			continue
		}
		shifts = append(shifts, s)
	}
	return shifts, nil
}

func (g *GraphQLService) ListMyShifts(ctx context.Context) ([]ShiftClaim, error) {
	var resp struct {
		MyShifts []ShiftClaim `json:"myShifts"`
	}
	if err := g.run(ctx, "GetMyShifts", getMyShiftsQuery, nil, &resp); err != nil {
		return nil, err
	}
	claims := make([]ShiftClaim, 0, len(resp.MyShifts))
	for _, c := range resp.MyShifts {
		if err := g.validate.Struct(c); err != nil {
			g.logger.Warn("dropping malformed shift claim", zap.String("claim_id", c.ID), zap.Error(err))
			continue
		}
		claims = append(claims, c)
	}
	return claims, nil
}

func (g *GraphQLService) ListMyTimeEntries(ctx context.Context, start, end time.Time) ([]TimeEntry, error) {
	var resp struct {
		MyTimeEntries []TimeEntry `json:"myTimeEntries"`
	}
	vars := map[string]interface{}{
		"startDate": start.UTC().Format(time.RFC3339),
		"endDate":   end.UTC().Format(time.RFC3339),
	}
	if err := g.run(ctx, "GetMyTimeEntries", getMyTimeEntriesQuery, vars, &resp); err != nil {
		return nil, err
	}
	entries := make([]TimeEntry, 0, len(resp.MyTimeEntries))
	for _, e := range resp.MyTimeEntries {
		if err := g.validate.Struct(e); err != nil {
			g.logger.Warn("dropping malformed time entry", zap.String("entry_id", e.ID), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (g *GraphQLService) ClockStatus(ctx context.Context) (ClockStatus, error) {
	var resp struct {
		ClockStatus ClockStatus `json:"clockStatus"`
	}
	if err := g.run(ctx, "GetClockStatus", getClockStatusQuery, nil, &resp); err != nil {
		return ClockStatus{}, err
	}
	return resp.ClockStatus, nil
}

func (g *GraphQLService) ClaimShift(ctx context.Context, shiftID string) (ShiftClaim, error) {
	var resp struct {
		ClaimShift ShiftClaim `json:"claimShift"`
	}
	vars := map[string]interface{}{"shiftId": shiftID}
	if err := g.run(ctx, "ClaimShift", claimShiftMutation, vars, &resp); err != nil {
		return ShiftClaim{}, err
	}
	return resp.ClaimShift, nil
}

func (g *GraphQLService) UnclaimShift(ctx context.Context, shiftID string) (bool, error) {
	var resp struct {
		UnclaimShift bool `json:"unclaimShift"`
	}
	vars := map[string]interface{}{"shiftId": shiftID}
	if err := g.run(ctx, "UnclaimShift", unclaimShiftMutation, vars, &resp); err != nil {
		return false, err
	}
	return resp.UnclaimShift, nil
}

func (g *GraphQLService) ClockIn(ctx context.Context, shiftID *string, lat, lon *float64) (TimeEntry, error) {
	var resp struct {
		ClockIn TimeEntry `json:"clockIn"`
	}
	vars := map[string]interface{}{}
	if shiftID != nil {
		vars["shiftId"] = *shiftID
	}
	if lat != nil {
		vars["latitude"] = *lat
	}
	if lon != nil {
		vars["longitude"] = *lon
	}
	if err := g.run(ctx, "ClockIn", clockInMutation, vars, &resp); err != nil {
		return TimeEntry{}, err
	}
	return resp.ClockIn, nil
}

func (g *GraphQLService) ClockOut(ctx context.Context, lat, lon *float64) (TimeEntry, error) {
	var resp struct {
		ClockOut TimeEntry `json:"clockOut"`
	}
	vars := map[string]interface{}{}
	if lat != nil {
		vars["latitude"] = *lat
	}
	if lon != nil {
		vars["longitude"] = *lon
	}
	if err := g.run(ctx, "ClockOut", clockOutMutation, vars, &resp); err != nil {
		return TimeEntry{}, err
	}
	return resp.ClockOut, nil
}
