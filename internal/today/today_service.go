package today

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"upshift/internal/config"
	"upshift/internal/geo"
	"upshift/internal/location"
	"upshift/internal/remote"
	"upshift/internal/shared/apperror"
	"upshift/internal/shared/contextutil"
	"upshift/internal/shift"
	"upshift/internal/state"
)

// Service orchestrates the today screen: fetching the day's shifts and
// running the gated check-in/check-out pipelines.
//
//go:generate mockgen -source=today_service.go -destination=mock/today_service_mock.go -package=mock
type Service interface {
	// Refresh rebuilds the TodayShift list from the remote records and
	// publishes the new snapshot.
	Refresh(ctx context.Context) ([]TodayShift, error)

	// CheckIn runs the check-in pipeline for one shift: permission gate
	// (prompting once if undetermined), location fix, proximity gate,
	// remote mutation, refresh.
	CheckIn(ctx context.Context, ts TodayShift) error

	// CheckOut runs the check-out pipeline. Permission must already be
	// granted; it is never re-requested here.
	CheckOut(ctx context.Context, ts TodayShift) error

	// Snapshots exposes the observable store of TodayShift lists.
	Snapshots() *state.Store[[]TodayShift]
}

type service struct {
	shifts     shift.Service
	remote     remote.Service
	loc        *location.Manager
	reconciler *Reconciler
	cfg        config.Config
	store      *state.Store[[]TodayShift]
	logger     *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool // shift id -> pipeline running
}

func NewService(
	shifts shift.Service,
	rs remote.Service,
	loc *location.Manager,
	reconciler *Reconciler,
	cfg config.Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("today.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("today.service")
	}
	return &service{
		shifts:     shifts,
		remote:     rs,
		loc:        loc,
		reconciler: reconciler,
		cfg:        cfg,
		store:      state.NewStore[[]TodayShift](),
		logger:     l,
		inFlight:   make(map[string]bool),
	}
}

func (s *service) Snapshots() *state.Store[[]TodayShift] {
	return s.store
}

func (s *service) Refresh(ctx context.Context) ([]TodayShift, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	var (
		claims  []shift.Claim
		entries []remote.TimeEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		claims, err = s.shifts.MyShifts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.remote.ListMyTimeEntries(gctx, today, tomorrow)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("today refresh failed", zap.Error(err))
		return nil, err
	}

	built := s.reconciler.BuildTodayShifts(claims, entries, now)

	// A cancelled screen must not observe a late snapshot.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.store.Publish(built)
	s.logger.Debug("today snapshot published", zap.Int("shifts", len(built)))
	return built, nil
}

func (s *service) CheckIn(ctx context.Context, ts TodayShift) error {
	ctx, rid := contextutil.EnsureRequestID(ctx)
	log := s.logger.With(zap.String("request_id", rid), zap.String("shift_id", ts.Claim.ShiftID))
	// Collaborators reached below log under this request's logger; the
	// request id itself travels separately so they can tag it themselves.
	ctx = contextutil.WithLogger(ctx, s.logger.With(zap.String("shift_id", ts.Claim.ShiftID)))

	release, err := s.acquire(ts.Claim.ShiftID)
	if err != nil {
		return err
	}
	defer release()

	// Gate 1: permission, prompting once when undetermined.
	if err := s.loc.EnsureAuthorized(ctx, true, s.cfg.PermissionWait); err != nil {
		log.Warn("check-in blocked on permission", zap.Error(err))
		return err
	}

	// Gate 2: one coalesced location fix.
	fix, err := s.loc.CurrentFix(ctx)
	if err != nil {
		log.Warn("check-in blocked on location", zap.Error(err))
		return err
	}

	// Gate 3: proximity, failing closed: no mutation leaves the client.
	if err := s.verifyProximity(fix, ts.Location, "check in"); err != nil {
		log.Info("check-in outside radius", zap.Error(err))
		return err
	}

	shiftID := ts.Claim.ShiftID
	entry, err := s.remote.ClockIn(ctx, &shiftID, &fix.Latitude, &fix.Longitude)
	if err != nil {
		log.Error("clock-in mutation failed", zap.Error(err))
		return err
	}
	log.Info("clocked in",
		zap.String("entry_id", entry.ID),
		zap.Float64("latitude", fix.Latitude),
		zap.Float64("longitude", fix.Longitude),
	)

	s.refreshAfter(ctx, log)
	return nil
}

func (s *service) CheckOut(ctx context.Context, ts TodayShift) error {
	ctx, rid := contextutil.EnsureRequestID(ctx)
	log := s.logger.With(zap.String("request_id", rid), zap.String("shift_id", ts.Claim.ShiftID))
	ctx = contextutil.WithLogger(ctx, s.logger.With(zap.String("shift_id", ts.Claim.ShiftID)))

	release, err := s.acquire(ts.Claim.ShiftID)
	if err != nil {
		return err
	}
	defer release()

	// Permission must already be granted; check-out never prompts.
	if err := s.loc.EnsureAuthorized(ctx, false, 0); err != nil {
		log.Warn("check-out blocked on permission", zap.Error(err))
		return err
	}

	fix, err := s.loc.CurrentFix(ctx)
	if err != nil {
		log.Warn("check-out blocked on location", zap.Error(err))
		return err
	}

	if err := s.verifyProximity(fix, ts.Location, "check out"); err != nil {
		log.Info("check-out outside radius", zap.Error(err))
		return err
	}

	entry, err := s.remote.ClockOut(ctx, &fix.Latitude, &fix.Longitude)
	if err != nil {
		log.Error("clock-out mutation failed", zap.Error(err))
		return err
	}
	log.Info("clocked out", zap.String("entry_id", entry.ID))

	s.refreshAfter(ctx, log)
	return nil
}

// acquire takes the per-shift pipeline flag. Pipelines for different shifts
// run independently; a second attempt on the same shift is rejected.
func (s *service) acquire(shiftID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[shiftID] {
		return nil, apperror.New(apperror.CodeConflict, "a clock action is already in progress for this shift")
	}
	s.inFlight[shiftID] = true
	return func() {
		s.mu.Lock()
		delete(s.inFlight, shiftID)
		s.mu.Unlock()
	}, nil
}

func (s *service) verifyProximity(fix geo.Coordinate, loc *geo.ShiftLocation, action string) error {
	if loc == nil {
		return nil
	}
	v := geo.Verify(fix, *loc)
	if v.IsWithinRadius {
		return nil
	}
	return apperror.New(apperror.CodeOutsideRadius, fmt.Sprintf(
		"You are %s from the shift location. You must be within %dm to %s.",
		v.DistanceDescription(), int(loc.Radius), action,
	))
}

// refreshAfter re-derives state after a successful mutation. The mutation
// already landed, so a failed refresh only logs; the next fetch heals it.
func (s *service) refreshAfter(ctx context.Context, log *zap.Logger) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.Refresh(ctx); err != nil {
		log.Warn("refresh after clock action failed", zap.Error(err))
	}
}
