package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/sangkips/scango-api/pkg/qrpayload"
	"github.com/sangkips/scango-api/pkg/utils"
	"go.uber.org/zap"
)

// Staff terminal actions suggested by a lookup
const (
	ActionCollect     = "COLLECT"
	ActionAlreadyPaid = "ALREADY_PAID"
	ActionAllowExit   = "ALLOW_EXIT"
	ActionDenyExit    = "DENY_EXIT"
)

// LookupResult is a receipt with the decision a staff terminal would take
type LookupResult struct {
	Receipt *entity.Receipt `json:"receipt"`
	Mode    enum.ScanMode   `json:"mode"`
	Action  string          `json:"action"`
	Reason  string          `json:"reason,omitempty"`
}

// ReceiptService drives the staff side of the receipt lifecycle
type ReceiptService struct {
	receipts         repository.ReceiptStore
	history          repository.HistoryRepository
	devHistoryLookup bool
	log              *zap.Logger
}

// NewReceiptService creates a new receipt service. devHistoryLookup lets a
// QR that carries only an order id be resolved through the history log.
func NewReceiptService(
	receipts repository.ReceiptStore,
	history repository.HistoryRepository,
	devHistoryLookup bool,
	log *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		receipts:         receipts,
		history:          history,
		devHistoryLookup: devHistoryLookup,
		log:              log,
	}
}

// ResolveReceiptNumber extracts the receipt number from a scanned code
func (s *ReceiptService) ResolveReceiptNumber(ctx context.Context, code string) (string, error) {
	payload, err := qrpayload.Parse(code)
	if err != nil {
		if errors.Is(err, qrpayload.ErrEmptyScan) {
			return "", apperror.NewBadRequestError("Scan a receipt QR or enter a receipt number")
		}
		return "", apperror.NewBadRequestError(err.Error())
	}

	switch p := payload.(type) {
	case qrpayload.Structured:
		if p.ReceiptNumber != "" {
			return p.ReceiptNumber, nil
		}
		if s.devHistoryLookup && p.OrderID != "" {
			order, err := s.history.FindByOrderID(ctx, p.OrderID)
			if err != nil {
				return "", apperror.NewPersistenceError("History unavailable", err)
			}
			if order != nil {
				return order.ReceiptNumber, nil
			}
		}
		return p.OrderID, nil
	case qrpayload.Literal:
		return normalizeTyped(p.Text), nil
	}
	return "", apperror.NewBadRequestError("Unrecognised code")
}

// normalizeTyped accepts "rcp-482913" or a bare "482913" for RCP-482913
func normalizeTyped(text string) string {
	upper := strings.ToUpper(text)
	if utils.LooksLikeReceiptNumber(upper) {
		return upper
	}
	if utils.LooksLikeReceiptNumber(utils.ReceiptPrefix + text) {
		return utils.ReceiptPrefix + text
	}
	return text
}

// Find loads the receipt a scanned code refers to
func (s *ReceiptService) Find(ctx context.Context, code string) (*entity.Receipt, error) {
	number, err := s.ResolveReceiptNumber(ctx, code)
	if err != nil {
		return nil, err
	}
	receipt, err := s.receipts.FindByReceiptNumber(ctx, number)
	if err != nil {
		return nil, storeError(err, "Receipt")
	}
	return receipt, nil
}

// Lookup shows what the terminal in mode would do with the receipt. It never writes.
func (s *ReceiptService) Lookup(ctx context.Context, code string, mode enum.ScanMode) (*LookupResult, error) {
	receipt, err := s.Find(ctx, code)
	if err != nil {
		return nil, err
	}

	result := &LookupResult{Receipt: receipt, Mode: mode}
	switch mode {
	case enum.ScanModeGuard:
		switch {
		case receipt.ExitVerification:
			result.Action, result.Reason = ActionDenyExit, apperror.ReasonAlreadyUsed
		case receipt.PaymentStatus.IsSettled():
			result.Action = ActionAllowExit
		default:
			result.Action, result.Reason = ActionDenyExit, apperror.ReasonPaymentPending
		}
	default:
		result.Mode = enum.ScanModeCashier
		if receipt.PaymentStatus == enum.PaymentStatusPending {
			result.Action = ActionCollect
		} else {
			result.Action, result.Reason = ActionAlreadyPaid, apperror.ReasonAlreadyPaid
		}
	}
	return result, nil
}

// CollectPayment marks a cash receipt as paid at the counter
func (s *ReceiptService) CollectPayment(ctx context.Context, code string) (*entity.Receipt, error) {
	number, err := s.ResolveReceiptNumber(ctx, code)
	if err != nil {
		return nil, err
	}
	receipt, err := s.receipts.FindByReceiptNumber(ctx, number)
	if err != nil {
		return nil, storeError(err, "Receipt")
	}
	if receipt.PaymentStatus != enum.PaymentStatusPending {
		return nil, apperror.NewInvalidTransitionError(apperror.ReasonAlreadyPaid, "Receipt is already paid")
	}

	won, err := s.receipts.CollectPayment(ctx, number)
	if err != nil {
		return nil, storeError(err, "Receipt")
	}
	if !won {
		// another counter collected it between the read and the write
		return nil, apperror.NewInvalidTransitionError(apperror.ReasonAlreadyPaid, "Receipt is already paid")
	}

	receipt.PaymentStatus = enum.PaymentStatusPaid
	s.log.Info("cash collected", zap.String("receipt_number", number), zap.Stringer("total", receipt.TotalAmount))
	return receipt, nil
}

// VerifyExit lets a paid receipt through the gate exactly once
func (s *ReceiptService) VerifyExit(ctx context.Context, code string) (*entity.Receipt, error) {
	number, err := s.ResolveReceiptNumber(ctx, code)
	if err != nil {
		return nil, err
	}
	receipt, err := s.receipts.FindByReceiptNumber(ctx, number)
	if err != nil {
		return nil, storeError(err, "Receipt")
	}

	outcome, err := s.receipts.TryConsumeExit(ctx, number)
	if err != nil {
		return nil, storeError(err, "Receipt")
	}

	switch outcome {
	case repository.ExitConsumed:
		receipt.ExitVerification = true
		receipt.PaymentStatus = enum.PaymentStatusVerified
		s.log.Info("exit verified", zap.String("receipt_number", number))
		return receipt, nil
	case repository.ExitAlreadyUsed:
		s.log.Warn("receipt reused at exit", zap.String("receipt_number", number))
		return nil, apperror.NewInvalidTransitionError(apperror.ReasonAlreadyUsed, "Receipt has already been used")
	default:
		return nil, apperror.NewInvalidTransitionError(apperror.ReasonPaymentPending, "Payment is pending at the cash counter")
	}
}
