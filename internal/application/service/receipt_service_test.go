package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/scango-api/internal/infrastructure/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/sangkips/scango-api/pkg/qrpayload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func transitionErr(reason string) error {
	return &apperror.AppError{Kind: apperror.KindInvalidTransition, Reason: reason}
}

func TestReceiptService_ResolveReceiptNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.checkoutOne(t, "user-1", saltBarcode, "UPI")

	number, err := env.receipt.ResolveReceiptNumber(ctx, order.QRPayload)
	require.NoError(t, err)
	assert.Equal(t, order.ReceiptNumber, number)

	number, err = env.receipt.ResolveReceiptNumber(ctx, "  RCP-123456 ")
	require.NoError(t, err)
	assert.Equal(t, "RCP-123456", number)

	for _, typed := range []string{"rcp-482913", "482913"} {
		number, err = env.receipt.ResolveReceiptNumber(ctx, typed)
		require.NoError(t, err)
		assert.Equal(t, "RCP-482913", number, typed)
	}

	_, err = env.receipt.ResolveReceiptNumber(ctx, "   ")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestReceiptService_OrderOnlyPayloadNeedsDevLookup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.checkoutOne(t, "user-1", saltBarcode, "CARD")
	orderOnly := `{"id":"` + order.ID + `","v":1}`

	_, err := env.receipt.Find(ctx, orderOnly)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	dev := NewReceiptService(env.receipts, env.history, true, zap.NewNop())
	receipt, err := dev.Find(ctx, orderOnly)
	require.NoError(t, err)
	assert.Equal(t, order.ReceiptNumber, receipt.ReceiptNumber)
}

func TestReceiptService_LookupDoesNotWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cash := env.checkoutOne(t, "user-1", saltBarcode, "CASH")
	card := env.checkoutOne(t, "user-2", maggiBarcode, "CARD")

	tests := []struct {
		name   string
		code   string
		mode   enum.ScanMode
		action string
		reason string
	}{
		{"cashier pending", cash.ReceiptNumber, enum.ScanModeCashier, ActionCollect, ""},
		{"cashier paid", card.ReceiptNumber, enum.ScanModeCashier, ActionAlreadyPaid, apperror.ReasonAlreadyPaid},
		{"guard pending", cash.ReceiptNumber, enum.ScanModeGuard, ActionDenyExit, apperror.ReasonPaymentPending},
		{"guard paid", card.QRPayload, enum.ScanModeGuard, ActionAllowExit, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.receipt.Lookup(ctx, tt.code, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}

	// looking twice as guard must not consume the exit
	got, err := env.receipts.FindByReceiptNumber(ctx, card.ReceiptNumber)
	require.NoError(t, err)
	assert.False(t, got.ExitVerification)
}

func TestReceiptService_CashLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.checkoutOne(t, "user-1", saltBarcode, "CASH")

	_, err := env.receipt.VerifyExit(ctx, order.QRPayload)
	assert.ErrorIs(t, err, transitionErr(apperror.ReasonPaymentPending))

	paid, err := env.receipt.CollectPayment(ctx, order.ReceiptNumber)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusPaid, paid.PaymentStatus)

	_, err = env.receipt.CollectPayment(ctx, order.ReceiptNumber)
	assert.ErrorIs(t, err, transitionErr(apperror.ReasonAlreadyPaid))

	verified, err := env.receipt.VerifyExit(ctx, order.QRPayload)
	require.NoError(t, err)
	assert.True(t, verified.ExitVerification)
	assert.Equal(t, enum.PaymentStatusVerified, verified.PaymentStatus)

	_, err = env.receipt.VerifyExit(ctx, order.QRPayload)
	assert.ErrorIs(t, err, transitionErr(apperror.ReasonAlreadyUsed))

	res, err := env.receipt.Lookup(ctx, order.ReceiptNumber, enum.ScanModeGuard)
	require.NoError(t, err)
	assert.Equal(t, ActionDenyExit, res.Action)
	assert.Equal(t, apperror.ReasonAlreadyUsed, res.Reason)
}

func TestReceiptService_UnknownReceipt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.receipt.VerifyExit(ctx, "RCP-000000")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = env.receipt.CollectPayment(ctx, "RCP-000000")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	code, err := qrpayload.Encode("", "RCP-000001", env.checkout.now())
	require.NoError(t, err)
	_, err = env.receipt.Lookup(ctx, code, enum.ScanModeCashier)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReceiptService_UnknownInBothBackends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	log := zap.NewNop()

	remoteDB, err := database.NewLocalDB(":memory:", false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateShared(remoteDB, log))
	t.Cleanup(func() {
		if sqlDB, err := remoteDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := infraRepo.NewFallbackReceiptStore(infraRepo.NewReceiptRepository(remoteDB), env.receipts, infraRepo.FallbackOptions{
		Resolver: func(context.Context) bool { return true },
		Timeout:  time.Second,
	})
	svc := NewReceiptService(store, env.history, false, log)

	_, err = svc.CollectPayment(ctx, "RCP-123456")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.VerifyExit(ctx, "RCP-123456")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.Lookup(ctx, "RCP-123456", enum.ScanModeGuard)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReceiptService_ConcurrentGatesAdmitOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	order := env.checkoutOne(t, "user-1", maggiBarcode, "CARD")

	const gates = 6
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted, rejected := 0, 0
	for i := 0; i < gates; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.receipt.VerifyExit(ctx, order.QRPayload)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
				return
			}
			if assert.ErrorIs(t, err, transitionErr(apperror.ReasonAlreadyUsed)) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted)
	assert.Equal(t, gates-1, rejected)
}
