package shift

import (
	"context"
	"time"

	"go.uber.org/zap"

	"upshift/internal/config"
	"upshift/internal/remote"
	"upshift/internal/shared/apperror"
	"upshift/internal/timeutil"
)

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	Browse(ctx context.Context, start, end time.Time) ([]Shift, error)
	MyShifts(ctx context.Context) ([]Claim, error)
	Claim(ctx context.Context, shiftID string) (Claim, error)
	Unclaim(ctx context.Context, shiftID string) error
}

type service struct {
	remote remote.Service
	cfg    config.Config
	logger *zap.Logger
}

func NewService(rs remote.Service, cfg config.Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{remote: rs, cfg: cfg, logger: l}
}

func (s *service) Browse(ctx context.Context, start, end time.Time) ([]Shift, error) {
	records, err := s.remote.ListShifts(ctx, start, end)
	if err != nil {
		s.logger.Error("list shifts failed", zap.Error(err))
		return nil, err
	}

	shifts := make([]Shift, 0, len(records))
	for _, rec := range records {
		sh, err := FromRecord(rec, s.cfg.DefaultProximityRadiusMeters)
		if err != nil {
			s.logger.Warn("dropping shift with malformed date",
				zap.String("shift_id", rec.ID),
				zap.String("date", rec.Date),
				zap.Error(err),
			)
			continue
		}
		shifts = append(shifts, sh)
	}
	return shifts, nil
}

func (s *service) MyShifts(ctx context.Context) ([]Claim, error) {
	records, err := s.remote.ListMyShifts(ctx)
	if err != nil {
		s.logger.Error("list my shifts failed", zap.Error(err))
		return nil, err
	}

	claims := make([]Claim, 0, len(records))
	for _, rec := range records {
		c, err := ClaimFromRecord(rec, s.cfg.DefaultProximityRadiusMeters)
		if err != nil {
			s.logger.Warn("dropping claim with malformed date",
				zap.String("claim_id", rec.ID),
				zap.Error(err),
			)
			continue
		}
		claims = append(claims, c)
	}
	return claims, nil
}

func (s *service) Claim(ctx context.Context, shiftID string) (Claim, error) {
	rec, err := s.remote.ClaimShift(ctx, shiftID)
	if err != nil {
		s.logger.Error("claim shift failed", zap.String("shift_id", shiftID), zap.Error(err))
		return Claim{}, err
	}
	c, err := ClaimFromRecord(rec, s.cfg.DefaultProximityRadiusMeters)
	if err != nil {
		// The claim went through; only the local parse failed.
		s.logger.Warn("claimed shift has malformed date", zap.String("claim_id", rec.ID), zap.Error(err))
		return Claim{}, err
	}
	s.logger.Info("shift claimed", zap.String("shift_id", shiftID), zap.String("claim_id", c.ID))
	return c, nil
}

func (s *service) Unclaim(ctx context.Context, shiftID string) error {
	ok, err := s.remote.UnclaimShift(ctx, shiftID)
	if err != nil {
		s.logger.Error("unclaim shift failed", zap.String("shift_id", shiftID), zap.Error(err))
		return err
	}
	if !ok {
		return apperror.ErrNotFound
	}
	s.logger.Info("shift unclaimed", zap.String("shift_id", shiftID))
	return nil
}

// ShiftsForDate filters shifts to one calendar day.
func ShiftsForDate(shifts []Shift, date time.Time) []Shift {
	out := make([]Shift, 0)
	for _, sh := range shifts {
		if timeutil.SameDay(sh.Date, date) {
			out = append(out, sh)
		}
	}
	return out
}

// ClaimsForDate filters claims by their shift's calendar day.
func ClaimsForDate(claims []Claim, date time.Time) []Claim {
	out := make([]Claim, 0)
	for _, c := range claims {
		if timeutil.SameDay(c.Shift.Date, date) {
			out = append(out, c)
		}
	}
	return out
}
