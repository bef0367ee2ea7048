package today

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"upshift/internal/config"
	"upshift/internal/remote"
	"upshift/internal/shift"
	"upshift/internal/timeutil"
)

// Reconciler derives TodayShift view state from claims and time entries.
type Reconciler struct {
	approvalThreshold int // minutes
	logger            *zap.Logger
}

func NewReconciler(cfg config.Config, logger ...*zap.Logger) *Reconciler {
	l := zap.L().Named("today.reconciler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("today.reconciler")
	}
	return &Reconciler{
		approvalThreshold: cfg.ManagerApprovalThresholdMinutes,
		logger:            l,
	}
}

// BuildTodayShifts filters claims to now's calendar day, attaches each
// claim's time entry (matched by shift id), derives the check-in record, and
// sorts by scheduled start. Entries with malformed timestamps are dropped
// and logged; the claim itself survives with no record.
func (r *Reconciler) BuildTodayShifts(claims []shift.Claim, entries []remote.TimeEntry, now time.Time) []TodayShift {
	entryByShift := make(map[string]remote.TimeEntry, len(entries))
	for _, e := range entries {
		if e.ShiftID != nil {
			entryByShift[*e.ShiftID] = e
		}
	}

	out := make([]TodayShift, 0, len(claims))
	for _, claim := range claims {
		if !timeutil.SameDay(claim.Shift.Date, now) {
			continue
		}

		var record *CheckInOutRecord
		if entry, ok := entryByShift[claim.ShiftID]; ok {
			rec, err := r.RecordFor(entry, claim)
			if err != nil {
				r.logger.Warn("dropping time entry with malformed timestamp",
					zap.String("entry_id", entry.ID),
					zap.String("shift_id", claim.ShiftID),
					zap.Error(err),
				)
			} else {
				record = &rec
			}
		}

		out = append(out, TodayShift{
			ID:       claim.ID,
			Claim:    claim,
			Record:   record,
			Location: claim.Shift.Location,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		si, ei := timeutil.CombineDateAndWallClock(out[i].Claim.Shift.Date, out[i].Claim.Shift.StartTime)
		sj, ej := timeutil.CombineDateAndWallClock(out[j].Claim.Shift.Date, out[j].Claim.Shift.StartTime)
		if ei != nil || ej != nil {
			return out[i].Claim.Shift.Date.Before(out[j].Claim.Shift.Date)
		}
		return si.Before(sj)
	})
	return out
}

// RecordFor derives a CheckInOutRecord from one time entry and its claim.
// A malformed clock-in timestamp fails the whole record; a malformed
// clock-out leaves the entry checked in rather than guessing.
func (r *Reconciler) RecordFor(entry remote.TimeEntry, claim shift.Claim) (CheckInOutRecord, error) {
	clockIn, err := timeutil.ParseTimestamp(entry.ClockInTime)
	if err != nil {
		return CheckInOutRecord{}, err
	}
	checkInTime := &clockIn

	var checkOutTime *time.Time
	if entry.ClockOutTime != nil {
		t, err := timeutil.ParseTimestamp(*entry.ClockOutTime)
		if err != nil {
			return CheckInOutRecord{}, err
		}
		checkOutTime = &t
	}

	scheduledHours, err := timeutil.ScheduledDurationHours(claim.Shift.StartTime, claim.Shift.EndTime)
	if err != nil {
		// Unparseable wall-clock times degrade to zero scheduled hours.
		r.logger.Warn("shift has malformed wall-clock times",
			zap.String("shift_id", claim.ShiftID),
			zap.String("start", claim.Shift.StartTime),
			zap.String("end", claim.Shift.EndTime),
		)
		scheduledHours = 0
	}

	status := StatusNotStarted
	switch {
	case checkOutTime != nil:
		status = StatusCompleted
	case checkInTime != nil:
		status = StatusCheckedIn
	}

	earlyIn, lateIn := timeutil.TimingDelta(checkInTime, claim.Shift.StartTime, claim.Shift.Date)
	earlyOut, lateOut := timeutil.TimingDelta(checkOutTime, claim.Shift.EndTime, claim.Shift.Date)

	requiresApproval := (lateIn != nil && *lateIn > r.approvalThreshold) ||
		(earlyOut != nil && *earlyOut > r.approvalThreshold)

	return CheckInOutRecord{
		ID:                      entry.ID,
		ShiftClaimID:            claim.ID,
		CheckInTime:             checkInTime,
		CheckOutTime:            checkOutTime,
		CheckInLatitude:         entry.ClockInLatitude,
		CheckInLongitude:        entry.ClockInLongitude,
		CheckOutLatitude:        entry.ClockOutLatitude,
		CheckOutLongitude:       entry.ClockOutLongitude,
		Status:                  status,
		RequiresManagerApproval: requiresApproval,
		EarlyCheckInMinutes:     earlyIn,
		LateCheckInMinutes:      lateIn,
		EarlyCheckOutMinutes:    earlyOut,
		LateCheckOutMinutes:     lateOut,
		ActualHoursWorked:       entry.HoursWorked,
		ScheduledHours:          scheduledHours,
	}, nil
}
