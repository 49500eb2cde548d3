package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"go.uber.org/zap"
)

// BackendResolver decides, per call, whether the remote backend should be tried
type BackendResolver func(ctx context.Context) bool

// RemoteHealth remembers a recent remote failure so callers can skip the
// network for a cool-down window instead of waiting on every timeout.
type RemoteHealth struct {
	mu        sync.Mutex
	cooldown  time.Duration
	downUntil time.Time
	now       func() time.Time
}

// NewRemoteHealth creates a health tracker with the given cool-down
func NewRemoteHealth(cooldown time.Duration) *RemoteHealth {
	return &RemoteHealth{cooldown: cooldown, now: time.Now}
}

// Available reports whether the remote is outside its cool-down window
func (h *RemoteHealth) Available() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.now().Before(h.downUntil)
}

// MarkFailure opens the cool-down window
func (h *RemoteHealth) MarkFailure() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.downUntil = h.now().Add(h.cooldown)
}

// MarkSuccess closes the cool-down window
func (h *RemoteHealth) MarkSuccess() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.downUntil = time.Time{}
}

// RemoteWhenHealthy is the default resolver: use the remote when it is
// configured and not cooling down
func RemoteWhenHealthy(configured bool, health *RemoteHealth) BackendResolver {
	return func(ctx context.Context) bool {
		return configured && health.Available()
	}
}

// RemoteWhenReady is RemoteWhenHealthy plus a readiness check such as a lazy
// schema migration. A failed check opens the cool-down window, so the check
// runs again once the window has passed.
func RemoteWhenReady(configured bool, health *RemoteHealth, ready func(context.Context) error, log *zap.Logger) BackendResolver {
	healthy := RemoteWhenHealthy(configured, health)
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context) bool {
		if !healthy(ctx) {
			return false
		}
		if ready == nil {
			return true
		}
		if err := ready(ctx); err != nil {
			if ctx.Err() == nil {
				health.MarkFailure()
				log.Warn("remote store not ready, using local store", zap.Error(err))
			}
			return false
		}
		return true
	}
}

// LocalOnly never selects the remote
func LocalOnly(ctx context.Context) bool {
	return false
}

// fallback runs an operation against the remote and falls back to the local backend
type fallback struct {
	resolve BackendResolver
	health  *RemoteHealth
	timeout time.Duration
	log     *zap.Logger
}

func newFallback(resolve BackendResolver, health *RemoteHealth, timeout time.Duration, log *zap.Logger) *fallback {
	if resolve == nil {
		resolve = LocalOnly
	}
	if health == nil {
		health = NewRemoteHealth(0)
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &fallback{resolve: resolve, health: health, timeout: timeout, log: log}
}

// call tries remote, then local. A remote ErrReceiptNotFound is confirmed
// against local when checkLocalOnMiss is set, because the record may have
// been written locally during an outage. Other domain errors are final.
func call[T any](
	ctx context.Context,
	f *fallback,
	op, key string,
	checkLocalOnMiss bool,
	remote func(context.Context) (T, error),
	local func(context.Context) (T, error),
) (T, error) {
	var zero T

	if !f.resolve(ctx) {
		return local(ctx)
	}

	rctx, cancel := context.WithTimeout(ctx, f.timeout)
	v, rerr := remote(rctx)
	cancel()

	switch {
	case rerr == nil:
		f.health.MarkSuccess()
		return v, nil

	case errors.Is(rerr, domainRepo.ErrReceiptNotFound):
		f.health.MarkSuccess()
		if !checkLocalOnMiss {
			return zero, rerr
		}
		lv, lerr := local(ctx)
		if lerr == nil {
			f.log.Info("record found only in local store", zap.String("op", op), zap.String("key", key))
			return lv, nil
		}
		if domainRepo.IsDomainError(lerr) {
			return zero, lerr
		}
		return zero, errors.Join(domainRepo.ErrStoreUnavailable, fmt.Errorf("local: %w", lerr))

	case domainRepo.IsDomainError(rerr):
		f.health.MarkSuccess()
		return zero, rerr
	}

	// The caller gave up; trying another backend would not help.
	if ctx.Err() != nil {
		return zero, ctx.Err()
	}

	f.health.MarkFailure()
	f.log.Warn("remote store failed, falling back to local",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(rerr),
	)

	lv, lerr := local(ctx)
	if lerr == nil || domainRepo.IsDomainError(lerr) {
		return lv, lerr
	}

	f.log.Error("local store failed after remote failure",
		zap.String("op", op),
		zap.String("key", key),
		zap.Error(lerr),
	)
	return zero, errors.Join(domainRepo.ErrStoreUnavailable, fmt.Errorf("remote: %w", rerr), fmt.Errorf("local: %w", lerr))
}
