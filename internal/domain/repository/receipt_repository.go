package repository

import (
	"context"
	"errors"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
)

var (
	// ErrReceiptNotFound is returned when no receipt has the given number
	ErrReceiptNotFound = errors.New("receipt not found")
	// ErrDuplicateReceipt is returned when the receipt number is already taken
	ErrDuplicateReceipt = errors.New("receipt number already exists")
	// ErrStatusRegression is returned when an update would move payment status backwards
	ErrStatusRegression = errors.New("payment status cannot move backwards")
	// ErrInvalidStatus is returned when the target payment status is not a known value
	ErrInvalidStatus = errors.New("invalid payment status")
	// ErrStoreUnavailable is returned when no backend could answer
	ErrStoreUnavailable = errors.New("receipt store unavailable")
)

// ExitOutcome is the result of an exit consumption attempt
type ExitOutcome int

const (
	// ExitConsumed means this call flipped the exit flag
	ExitConsumed ExitOutcome = iota
	// ExitAlreadyUsed means the receipt had already been used at the gate
	ExitAlreadyUsed
	// ExitPaymentPending means the receipt is not paid yet
	ExitPaymentPending
)

func (o ExitOutcome) String() string {
	switch o {
	case ExitConsumed:
		return "CONSUMED"
	case ExitAlreadyUsed:
		return "ALREADY_USED"
	case ExitPaymentPending:
		return "PAYMENT_PENDING"
	}
	return "UNKNOWN"
}

// ReceiptStore persists receipts. The networked and the embedded backend
// implement the same contract so either can serve any call.
type ReceiptStore interface {
	Insert(ctx context.Context, receipt *entity.Receipt) error
	FindByReceiptNumber(ctx context.Context, number string) (*entity.Receipt, error)
	UpdatePaymentStatus(ctx context.Context, number string, status enum.PaymentStatus) error
	// SetExitVerified sets the exit flag; setting it twice is not an error
	SetExitVerified(ctx context.Context, number string) error
	// TryConsumeExit checks and flips the exit flag in one conditional write
	TryConsumeExit(ctx context.Context, number string) (ExitOutcome, error)
	// CollectPayment moves PENDING to PAID; false means the receipt was not pending
	CollectPayment(ctx context.Context, number string) (bool, error)
}

// IsDomainError reports whether err is a definitive answer from a backend
// rather than a failure to reach it
func IsDomainError(err error) bool {
	return errors.Is(err, ErrReceiptNotFound) ||
		errors.Is(err, ErrDuplicateReceipt) ||
		errors.Is(err, ErrStatusRegression) ||
		errors.Is(err, ErrInvalidStatus)
}
