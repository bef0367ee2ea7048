package location

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"upshift/internal/geo"
	"upshift/internal/shared/apperror"
)

// pollInterval is how often EnsureAuthorized re-reads the provider while
// waiting for the user to answer a permission prompt.
const pollInterval = 100 * time.Millisecond

// Manager wraps a Provider with the sensor-sharing policy: concurrent fix
// requests collapse into one outstanding sensor call, and every fix is
// bounded by the configured timeout.
type Manager struct {
	provider   Provider
	fixTimeout time.Duration
	group      singleflight.Group
	logger     *zap.Logger

	mu      sync.Mutex
	waiters int
	fixCtx  context.Context
	abort   context.CancelFunc
}

func NewManager(provider Provider, fixTimeout time.Duration, logger ...*zap.Logger) *Manager {
	l := zap.L().Named("location.manager")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.manager")
	}
	return &Manager{provider: provider, fixTimeout: fixTimeout, logger: l}
}

func (m *Manager) AuthorizationStatus() AuthorizationStatus {
	return m.provider.AuthorizationStatus()
}

// EnsureAuthorized gates a clock pipeline on location permission. When the
// status is undetermined and allowPrompt is set, it prompts and waits up to
// wait for the user's answer; denied or still-undetermined states return
// ErrPermissionRequired.
func (m *Manager) EnsureAuthorized(ctx context.Context, allowPrompt bool, wait time.Duration) error {
	status := m.provider.AuthorizationStatus()
	if status.Granted() {
		return nil
	}
	if status != AuthorizationNotDetermined || !allowPrompt {
		m.logger.Warn("location permission missing", zap.Stringer("status", status))
		return apperror.ErrPermissionRequired
	}

	m.provider.RequestAuthorization()

	deadline := time.NewTimer(wait)
	defer deadline.Stop()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if m.provider.AuthorizationStatus().Granted() {
				return nil
			}
			m.logger.Warn("permission prompt unanswered", zap.Duration("waited", wait))
			return apperror.ErrPermissionRequired
		case <-ticker.C:
			if m.provider.AuthorizationStatus().Granted() {
				return nil
			}
		}
	}
}

// CurrentFix resolves one current-location fix. Concurrent callers share a
// single outstanding sensor request; each caller still observes its own ctx
// cancellation, and the shared request is aborted once the last waiter
// walks away.
func (m *Manager) CurrentFix(ctx context.Context) (geo.Coordinate, error) {
	fixCtx := m.join()
	defer m.leave()

	ch := m.group.DoChan("fix", func() (interface{}, error) {
		return m.provider.CurrentFix(fixCtx)
	})

	select {
	case <-ctx.Done():
		// Other waiters keep the sensor call alive; this caller just
		// stops waiting.
		return geo.Coordinate{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			m.logger.Warn("location fix failed", zap.Error(res.Err))
			if errors.Is(res.Err, context.DeadlineExceeded) {
				return geo.Coordinate{}, apperror.ErrLocationUnavailable
			}
			return geo.Coordinate{}, apperror.Wrap(res.Err, apperror.CodeLocationUnavailable, "failed to get your location")
		}
		return res.Val.(geo.Coordinate), nil
	}
}

// join registers a waiter on the shared sensor call, opening a fresh bounded
// context when none is outstanding.
func (m *Manager) join() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.waiters == 0 {
		m.fixCtx, m.abort = context.WithTimeout(context.Background(), m.fixTimeout)
	}
	m.waiters++
	return m.fixCtx
}

// leave drops a waiter. The last one out aborts the shared sensor call and
// forgets the flight so an abandoned request never lingers.
func (m *Manager) leave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.waiters--
	if m.waiters == 0 {
		m.abort()
		m.group.Forget("fix")
	}
}
