package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/sangkips/scango-api/pkg/qrpayload"
	"github.com/sangkips/scango-api/pkg/utils"
	"go.uber.org/zap"
)

const defaultReceiptAttempts = 5

// CheckoutService turns a cart into a receipt and a history entry
type CheckoutService struct {
	receipts    repository.ReceiptStore
	history     repository.HistoryRepository
	stores      repository.StoreRepository
	maxAttempts int
	log         *zap.Logger

	now              func() time.Time
	newReceiptNumber func() (string, error)
	newOrderID       func() (string, error)
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	receipts repository.ReceiptStore,
	history repository.HistoryRepository,
	stores repository.StoreRepository,
	maxAttempts int,
	log *zap.Logger,
) *CheckoutService {
	if maxAttempts < 1 {
		maxAttempts = defaultReceiptAttempts
	}
	return &CheckoutService{
		receipts:         receipts,
		history:          history,
		stores:           stores,
		maxAttempts:      maxAttempts,
		log:              log,
		now:              time.Now,
		newReceiptNumber: utils.GenerateReceiptNumber,
		newOrderID:       utils.GenerateOrderID,
	}
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	CustomerID    string
	StoreID       string
	Items         []entity.CartItem
	PaymentMethod string
}

// CheckoutOutput is the created order. HistorySaved is false when the
// receipt was stored but the history entry could not be written.
type CheckoutOutput struct {
	Order        *entity.Order `json:"order"`
	HistorySaved bool          `json:"history_saved"`
}

// Checkout persists a receipt and appends the order to the customer's history.
// The two writes are independent: a receipt failure aborts the checkout, a
// history failure is logged and reported through HistorySaved.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	if input.StoreID == "" {
		return nil, apperror.NewBadRequestError("Store is required")
	}
	method, err := enum.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	var total, discount entity.Money
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid quantity for %s", item.Product.Name))
		}
		total += item.LineTotal()
		discount += item.LineSavings()
	}

	store, err := s.stores.GetByID(ctx, input.StoreID)
	if err != nil {
		return nil, apperror.NewPersistenceError("Store directory unavailable", err)
	}
	if store == nil {
		return nil, apperror.NewBadRequestError("Unknown store")
	}

	createdAt := s.now().UTC()
	lines := entity.LinesFromCart(input.Items)
	receipt := &entity.Receipt{
		StoreID:       store.ID,
		TotalAmount:   total,
		PaymentMethod: method,
		PaymentStatus: method.InitialStatus(),
		Items:         lines,
		CreatedAt:     createdAt,
	}

	if err := s.insertWithFreshNumber(ctx, receipt); err != nil {
		return nil, err
	}

	orderID, err := s.newOrderID()
	if err != nil {
		return nil, apperror.NewAppError(http.StatusInternalServerError, "Failed to generate order ID")
	}
	payload, err := qrpayload.Encode(orderID, receipt.ReceiptNumber, createdAt)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:            orderID,
		CustomerID:    input.CustomerID,
		ReceiptNumber: receipt.ReceiptNumber,
		StoreID:       store.ID,
		StoreName:     store.Name,
		Items:         lines,
		TotalAmount:   total,
		TotalDiscount: discount,
		PaymentMethod: method,
		Status:        receipt.PaymentStatus,
		QRPayload:     payload,
		CreatedAt:     createdAt,
	}

	out := &CheckoutOutput{Order: order, HistorySaved: true}
	if err := s.history.Append(ctx, order); err != nil {
		s.log.Error("failed to append order to history",
			zap.String("order_id", order.ID),
			zap.String("receipt_number", order.ReceiptNumber),
			zap.Error(err),
		)
		out.HistorySaved = false
	}

	s.log.Info("checkout completed",
		zap.String("order_id", order.ID),
		zap.String("receipt_number", order.ReceiptNumber),
		zap.String("payment_method", method.String()),
		zap.Stringer("total", total),
	)
	return out, nil
}

// insertWithFreshNumber draws receipt numbers until one is free
func (s *CheckoutService) insertWithFreshNumber(ctx context.Context, receipt *entity.Receipt) error {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		number, err := s.newReceiptNumber()
		if err != nil {
			return apperror.NewAppError(http.StatusInternalServerError, "Failed to generate receipt number")
		}
		receipt.ReceiptNumber = number

		err = s.receipts.Insert(ctx, receipt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateReceipt) {
			return storeError(err, "Receipt")
		}
		s.log.Warn("receipt number collision", zap.String("receipt_number", number), zap.Int("attempt", attempt))
	}
	return apperror.NewPersistenceError("Could not allocate a receipt number",
		fmt.Errorf("%d collisions: %w", s.maxAttempts, repository.ErrDuplicateReceipt))
}
