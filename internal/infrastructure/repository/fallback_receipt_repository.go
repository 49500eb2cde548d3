package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"go.uber.org/zap"
)

// FallbackReceiptStore serves receipts from the remote backend and the local
// backend when the remote is unselected or failing. Callers see one store.
type FallbackReceiptStore struct {
	remote domainRepo.ReceiptStore
	local  domainRepo.ReceiptStore
	f      *fallback
}

// FallbackOptions configures a FallbackReceiptStore
type FallbackOptions struct {
	Resolver BackendResolver
	Health   *RemoteHealth
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewFallbackReceiptStore composes two stores. remote may be nil.
func NewFallbackReceiptStore(remote, local domainRepo.ReceiptStore, opts FallbackOptions) *FallbackReceiptStore {
	resolve := opts.Resolver
	if remote == nil {
		resolve = LocalOnly
	}
	return &FallbackReceiptStore{
		remote: remote,
		local:  local,
		f:      newFallback(resolve, opts.Health, opts.Timeout, opts.Logger),
	}
}

var _ domainRepo.ReceiptStore = (*FallbackReceiptStore)(nil)

type none struct{}

// Insert writes to the remote when it is selected, but first refuses a number
// already held by the local store from an earlier outage. Lookups read the
// remote first, so a remote copy would hide the local receipt.
func (s *FallbackReceiptStore) Insert(ctx context.Context, receipt *entity.Receipt) error {
	_, err := call(ctx, s.f, "insert", receipt.ReceiptNumber, false,
		func(rctx context.Context) (none, error) {
			if err := s.takenLocally(ctx, receipt.ReceiptNumber); err != nil {
				return none{}, err
			}
			return none{}, s.remote.Insert(rctx, receipt)
		},
		func(ctx context.Context) (none, error) { return none{}, s.local.Insert(ctx, receipt) },
	)
	return err
}

// takenLocally returns ErrDuplicateReceipt when the local store holds number.
// An unreadable local store does not block the remote write.
func (s *FallbackReceiptStore) takenLocally(ctx context.Context, number string) error {
	_, err := s.local.FindByReceiptNumber(ctx, number)
	switch {
	case err == nil:
		return domainRepo.ErrDuplicateReceipt
	case errors.Is(err, domainRepo.ErrReceiptNotFound):
		return nil
	}
	s.f.log.Warn("local store unreadable during insert check",
		zap.String("receipt_number", number),
		zap.Error(err),
	)
	return nil
}

func (s *FallbackReceiptStore) FindByReceiptNumber(ctx context.Context, number string) (*entity.Receipt, error) {
	return call(ctx, s.f, "find", number, true,
		func(ctx context.Context) (*entity.Receipt, error) { return s.remote.FindByReceiptNumber(ctx, number) },
		func(ctx context.Context) (*entity.Receipt, error) { return s.local.FindByReceiptNumber(ctx, number) },
	)
}

func (s *FallbackReceiptStore) UpdatePaymentStatus(ctx context.Context, number string, status enum.PaymentStatus) error {
	_, err := call(ctx, s.f, "update_status", number, true,
		func(ctx context.Context) (none, error) {
			return none{}, s.remote.UpdatePaymentStatus(ctx, number, status)
		},
		func(ctx context.Context) (none, error) {
			return none{}, s.local.UpdatePaymentStatus(ctx, number, status)
		},
	)
	return err
}

func (s *FallbackReceiptStore) SetExitVerified(ctx context.Context, number string) error {
	_, err := call(ctx, s.f, "set_exit_verified", number, true,
		func(ctx context.Context) (none, error) { return none{}, s.remote.SetExitVerified(ctx, number) },
		func(ctx context.Context) (none, error) { return none{}, s.local.SetExitVerified(ctx, number) },
	)
	return err
}

func (s *FallbackReceiptStore) TryConsumeExit(ctx context.Context, number string) (domainRepo.ExitOutcome, error) {
	return call(ctx, s.f, "consume_exit", number, true,
		func(ctx context.Context) (domainRepo.ExitOutcome, error) { return s.remote.TryConsumeExit(ctx, number) },
		func(ctx context.Context) (domainRepo.ExitOutcome, error) { return s.local.TryConsumeExit(ctx, number) },
	)
}

func (s *FallbackReceiptStore) CollectPayment(ctx context.Context, number string) (bool, error) {
	return call(ctx, s.f, "collect_payment", number, true,
		func(ctx context.Context) (bool, error) { return s.remote.CollectPayment(ctx, number) },
		func(ctx context.Context) (bool, error) { return s.local.CollectPayment(ctx, number) },
	)
}
