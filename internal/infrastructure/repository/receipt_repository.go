package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"gorm.io/gorm"
)

var settledStatuses = []string{
	string(enum.PaymentStatusPaid),
	string(enum.PaymentStatusVerified),
}

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a receipt store over any gorm backend
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptStore {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Insert(ctx context.Context, receipt *entity.Receipt) error {
	err := r.db.WithContext(ctx).Create(receipt).Error
	if isDuplicateKey(err) {
		return domainRepo.ErrDuplicateReceipt
	}
	return err
}

func (r *receiptRepository) FindByReceiptNumber(ctx context.Context, number string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).Where("receipt_number = ?", number).First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainRepo.ErrReceiptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// UpdatePaymentStatus only applies the change if it keeps the status monotonic
func (r *receiptRepository) UpdatePaymentStatus(ctx context.Context, number string, status enum.PaymentStatus) error {
	if !status.IsValid() {
		return domainRepo.ErrInvalidStatus
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Receipt{}).
		Where("receipt_number = ? AND payment_status IN ?", number, predecessorsOf(status)).
		Update("payment_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	current, err := r.FindByReceiptNumber(ctx, number)
	if err != nil {
		return err
	}
	if current.PaymentStatus == status {
		return nil
	}
	return domainRepo.ErrStatusRegression
}

func (r *receiptRepository) SetExitVerified(ctx context.Context, number string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Receipt{}).
		Where("receipt_number = ?", number).
		Update("exit_verification", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		_, err := r.FindByReceiptNumber(ctx, number)
		return err
	}
	return nil
}

// TryConsumeExit flips the exit flag only for an unused, settled receipt.
// The condition and the write are a single UPDATE so two gates scanning the
// same receipt cannot both succeed.
func (r *receiptRepository) TryConsumeExit(ctx context.Context, number string) (domainRepo.ExitOutcome, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Receipt{}).
		Where("receipt_number = ? AND exit_verification = ? AND payment_status IN ?", number, false, settledStatuses).
		Updates(map[string]interface{}{
			"exit_verification": true,
			"payment_status":    enum.PaymentStatusVerified,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 1 {
		return domainRepo.ExitConsumed, nil
	}

	current, err := r.FindByReceiptNumber(ctx, number)
	if err != nil {
		return 0, err
	}
	if current.ExitVerification {
		return domainRepo.ExitAlreadyUsed, nil
	}
	return domainRepo.ExitPaymentPending, nil
}

// CollectPayment moves a PENDING receipt to PAID in one conditional UPDATE
func (r *receiptRepository) CollectPayment(ctx context.Context, number string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Receipt{}).
		Where("receipt_number = ? AND payment_status = ?", number, string(enum.PaymentStatusPending)).
		Update("payment_status", enum.PaymentStatusPaid)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	if _, err := r.FindByReceiptNumber(ctx, number); err != nil {
		return false, err
	}
	return false, nil
}

func predecessorsOf(status enum.PaymentStatus) []string {
	all := []enum.PaymentStatus{enum.PaymentStatusPending, enum.PaymentStatusPaid, enum.PaymentStatusVerified}
	out := make([]string, 0, len(all))
	for _, s := range all {
		if s.CanAdvanceTo(status) {
			out = append(out, string(s))
		}
	}
	return out
}

// isDuplicateKey recognises unique violations, with or without gorm's error translation
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
