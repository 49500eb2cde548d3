package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errConnRefused = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

// flakyStore wraps a real store and fails every call while err is set
type flakyStore struct {
	inner domainRepo.ReceiptStore
	err   error
	calls atomic.Int32
}

func (s *flakyStore) fail() error {
	s.calls.Add(1)
	return s.err
}

func (s *flakyStore) Insert(ctx context.Context, r *entity.Receipt) error {
	if err := s.fail(); err != nil {
		return err
	}
	return s.inner.Insert(ctx, r)
}

func (s *flakyStore) FindByReceiptNumber(ctx context.Context, n string) (*entity.Receipt, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.inner.FindByReceiptNumber(ctx, n)
}

func (s *flakyStore) UpdatePaymentStatus(ctx context.Context, n string, st enum.PaymentStatus) error {
	if err := s.fail(); err != nil {
		return err
	}
	return s.inner.UpdatePaymentStatus(ctx, n, st)
}

func (s *flakyStore) SetExitVerified(ctx context.Context, n string) error {
	if err := s.fail(); err != nil {
		return err
	}
	return s.inner.SetExitVerified(ctx, n)
}

func (s *flakyStore) TryConsumeExit(ctx context.Context, n string) (domainRepo.ExitOutcome, error) {
	if err := s.fail(); err != nil {
		return 0, err
	}
	return s.inner.TryConsumeExit(ctx, n)
}

func (s *flakyStore) CollectPayment(ctx context.Context, n string) (bool, error) {
	if err := s.fail(); err != nil {
		return false, err
	}
	return s.inner.CollectPayment(ctx, n)
}

type fallbackFixture struct {
	remote *flakyStore
	local  *flakyStore
	health *RemoteHealth
	store  *FallbackReceiptStore
}

func newFallbackFixture(t *testing.T) *fallbackFixture {
	t.Helper()
	fx := &fallbackFixture{
		remote: &flakyStore{inner: NewReceiptRepository(newTestDB(t))},
		local:  &flakyStore{inner: NewReceiptRepository(newTestDB(t))},
		health: NewRemoteHealth(time.Minute),
	}
	fx.store = NewFallbackReceiptStore(fx.remote, fx.local, FallbackOptions{
		Resolver: RemoteWhenHealthy(true, fx.health),
		Health:   fx.health,
		Timeout:  time.Second,
		Logger:   zap.NewNop(),
	})
	return fx
}

func TestFallbackReceiptStore_RemoteHealthyServesRemote(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.store.Insert(ctx, newReceipt("RCP-500001", enum.PaymentStatusPaid)))

	_, err := fx.remote.inner.FindByReceiptNumber(ctx, "RCP-500001")
	assert.NoError(t, err)
	_, err = fx.local.inner.FindByReceiptNumber(ctx, "RCP-500001")
	assert.ErrorIs(t, err, domainRepo.ErrReceiptNotFound)
	// the insert reads local once for uniqueness and never writes there
	assert.Equal(t, int32(1), fx.local.calls.Load())
}

func TestFallbackReceiptStore_RemoteDownWritesLocal(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()
	fx.remote.err = errConnRefused

	require.NoError(t, fx.store.Insert(ctx, newReceipt("RCP-500002", enum.PaymentStatusPending)))

	got, err := fx.local.inner.FindByReceiptNumber(ctx, "RCP-500002")
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPending, got.PaymentStatus)
	assert.False(t, fx.health.Available())
}

func TestFallbackReceiptStore_RemoteMissChecksLocal(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.local.inner.Insert(ctx, newReceipt("RCP-500003", enum.PaymentStatusPaid)))

	got, err := fx.store.FindByReceiptNumber(ctx, "RCP-500003")
	require.NoError(t, err)
	assert.Equal(t, "RCP-500003", got.ReceiptNumber)

	outcome, err := fx.store.TryConsumeExit(ctx, "RCP-500003")
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ExitConsumed, outcome)

	_, err = fx.store.FindByReceiptNumber(ctx, "RCP-000000")
	assert.ErrorIs(t, err, domainRepo.ErrReceiptNotFound)
	assert.True(t, fx.health.Available())
}

func TestFallbackReceiptStore_DuplicateIsFinal(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.remote.inner.Insert(ctx, newReceipt("RCP-500004", enum.PaymentStatusPaid)))

	err := fx.store.Insert(ctx, newReceipt("RCP-500004", enum.PaymentStatusPaid))
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateReceipt)
	// only the uniqueness read touched local
	assert.Equal(t, int32(1), fx.local.calls.Load())
	assert.True(t, fx.health.Available())
}

func TestFallbackReceiptStore_NumberFromOutageStaysUnique(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()

	fx.remote.err = errConnRefused
	outage := newReceipt("RCP-111111", enum.PaymentStatusPending)
	outage.StoreID = "store-001"
	require.NoError(t, fx.store.Insert(ctx, outage))

	fx.remote.err = nil
	fx.health.MarkSuccess()
	later := newReceipt("RCP-111111", enum.PaymentStatusPaid)
	later.StoreID = "store-002"
	err := fx.store.Insert(ctx, later)
	assert.ErrorIs(t, err, domainRepo.ErrDuplicateReceipt)

	_, err = fx.remote.inner.FindByReceiptNumber(ctx, "RCP-111111")
	assert.ErrorIs(t, err, domainRepo.ErrReceiptNotFound)

	got, err := fx.store.FindByReceiptNumber(ctx, "RCP-111111")
	require.NoError(t, err)
	assert.Equal(t, "store-001", got.StoreID)
	assert.Equal(t, enum.PaymentStatusPending, got.PaymentStatus)
}

func TestFallbackReceiptStore_UnreadableLocalDoesNotBlockRemoteInsert(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()
	fx.local.err = errors.New("database is locked")

	require.NoError(t, fx.store.Insert(ctx, newReceipt("RCP-500009", enum.PaymentStatusPaid)))
	_, err := fx.remote.inner.FindByReceiptNumber(ctx, "RCP-500009")
	assert.NoError(t, err)
}

func TestFallbackReceiptStore_BothDown(t *testing.T) {
	fx := newFallbackFixture(t)
	fx.remote.err = errConnRefused
	fx.local.err = errors.New("disk I/O error")

	_, err := fx.store.FindByReceiptNumber(context.Background(), "RCP-500005")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainRepo.ErrStoreUnavailable)
	assert.ErrorIs(t, err, errConnRefused)
	assert.ErrorIs(t, err, fx.local.err)
}

func TestFallbackReceiptStore_CoolDownSkipsRemote(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	fx.health.now = func() time.Time { return now }
	fx.remote.err = errConnRefused

	require.NoError(t, fx.store.Insert(ctx, newReceipt("RCP-500006", enum.PaymentStatusPaid)))
	require.Equal(t, int32(1), fx.remote.calls.Load())

	// inside the window the remote is not tried at all
	_, err := fx.store.FindByReceiptNumber(ctx, "RCP-500006")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fx.remote.calls.Load())

	// after the window the remote is probed again
	now = now.Add(2 * time.Minute)
	fx.remote.err = nil
	_, err = fx.store.FindByReceiptNumber(ctx, "RCP-500006")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fx.remote.calls.Load())
	assert.True(t, fx.health.Available())
}

func TestFallbackReceiptStore_NilRemoteIsLocalOnly(t *testing.T) {
	local := NewReceiptRepository(newTestDB(t))
	store := NewFallbackReceiptStore(nil, local, FallbackOptions{Logger: zap.NewNop()})
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, newReceipt("RCP-500007", enum.PaymentStatusPending)))
	ok, err := store.CollectPayment(ctx, "RCP-500007")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFallbackReceiptStore_CancelledCallerDoesNotFallBack(t *testing.T) {
	fx := newFallbackFixture(t)
	fx.remote.err = context.Canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fx.store.FindByReceiptNumber(ctx, "RCP-500008")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fx.local.calls.Load())
}

func TestRemoteWhenReady_RetriesAfterCoolDown(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	health := NewRemoteHealth(time.Minute)
	health.now = func() time.Time { return now }

	var attempts int
	readyErr := errConnRefused
	resolve := RemoteWhenReady(true, health, func(context.Context) error {
		attempts++
		return readyErr
	}, zap.NewNop())
	ctx := context.Background()

	assert.False(t, resolve(ctx))
	assert.False(t, health.Available())
	assert.False(t, resolve(ctx))
	assert.Equal(t, 1, attempts, "no check inside the cool-down window")

	now = now.Add(2 * time.Minute)
	readyErr = nil
	assert.True(t, resolve(ctx))
	assert.Equal(t, 2, attempts)

	assert.False(t, RemoteWhenReady(false, NewRemoteHealth(time.Minute), nil, nil)(ctx))
}

func TestFallbackReceiptStore_RemoteDownAtBootIsUsedOnceReachable(t *testing.T) {
	fx := newFallbackFixture(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	fx.health.now = func() time.Time { return now }

	readyErr := errConnRefused
	fx.store = NewFallbackReceiptStore(fx.remote, fx.local, FallbackOptions{
		Resolver: RemoteWhenReady(true, fx.health, func(context.Context) error { return readyErr }, zap.NewNop()),
		Health:   fx.health,
		Timeout:  time.Second,
		Logger:   zap.NewNop(),
	})

	require.NoError(t, fx.store.Insert(ctx, newReceipt("RCP-500010", enum.PaymentStatusPaid)))
	_, err := fx.local.inner.FindByReceiptNumber(ctx, "RCP-500010")
	require.NoError(t, err)
	assert.Zero(t, fx.remote.calls.Load())

	now = now.Add(2 * time.Minute)
	readyErr = nil
	require.NoError(t, fx.store.Insert(ctx, newReceipt("RCP-500011", enum.PaymentStatusPaid)))
	_, err = fx.remote.inner.FindByReceiptNumber(ctx, "RCP-500011")
	assert.NoError(t, err)
}
