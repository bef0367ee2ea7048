package earnings

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"upshift/internal/config"
	"upshift/internal/shift"
)

//go:generate mockgen -source=earnings_service.go -destination=mock/earnings_service_mock.go -package=mock
type Service interface {
	// FetchWeek returns the worker's completed shifts inside [start, end]
	// plus their summary, most recent first.
	FetchWeek(ctx context.Context, start, end time.Time) ([]CompletedShift, WeekSummary, error)
}

type service struct {
	shifts shift.Service
	cfg    config.Config
	logger *zap.Logger
	now    func() time.Time
}

func NewService(shifts shift.Service, cfg config.Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("earnings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("earnings.service")
	}
	return &service{shifts: shifts, cfg: cfg, logger: l, now: time.Now}
}

func (s *service) FetchWeek(ctx context.Context, start, end time.Time) ([]CompletedShift, WeekSummary, error) {
	claims, err := s.shifts.MyShifts(ctx)
	if err != nil {
		s.logger.Error("fetch week failed", zap.Error(err))
		return nil, WeekSummary{}, err
	}

	now := s.now()
	completed := make([]CompletedShift, 0, len(claims))
	for _, c := range claims {
		d := c.Shift.Date
		// Completed means inside the selected range and in the past.
		if d.Before(start) || d.After(end) || !d.Before(now) {
			continue
		}
		completed = append(completed, CompletedShift{
			ID:         c.ID,
			Date:       d,
			StartTime:  c.Shift.StartTime,
			EndTime:    c.Shift.EndTime,
			Role:       c.Shift.Role,
			HourlyRate: s.cfg.HourlyRate,
		})
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].Date.After(completed[j].Date)
	})

	summary := WeekSummary{ShiftsCount: len(completed)}
	for _, cs := range completed {
		summary.TotalHours += cs.Hours()
		summary.ProjectedPay += cs.Pay()
	}
	return completed, summary, nil
}
