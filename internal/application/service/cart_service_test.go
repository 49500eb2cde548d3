package service

import (
	"context"
	"testing"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectStore(t *testing.T, env *testEnv, customerID, storeID string) *CartView {
	t.Helper()
	view, err := env.cart.SelectStore(context.Background(), customerID, storeID)
	require.NoError(t, err)
	return view
}

func TestCartService_RequiresStoreBeforeScan(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.cart.AddByBarcode(context.Background(), "user-1", saltBarcode, 1)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCartService_ScanMergesAndTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	selectStore(t, env, "user-1", "store-001")

	_, err := env.cart.AddByBarcode(ctx, "user-1", saltBarcode, 1)
	require.NoError(t, err)
	_, err = env.cart.AddByBarcode(ctx, "user-1", maggiBarcode, 2)
	require.NoError(t, err)
	view, err := env.cart.AddByBarcode(ctx, "user-1", saltBarcode, 1)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, "dm-001", view.Items[0].Product.ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 4, view.Count)
	assert.Equal(t, entity.Money(2*2520+2*1400), view.Payable)
	assert.Equal(t, entity.Money(2*280), view.Savings)
}

func TestCartService_UnknownBarcodeLeavesCartUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	selectStore(t, env, "user-1", "store-001")

	_, err := env.cart.AddByBarcode(ctx, "user-1", "0000000000000", 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, env.cart.Get("user-1").Count)
}

func TestCartService_AdjustAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	selectStore(t, env, "user-1", "store-001")
	_, err := env.cart.AddByBarcode(ctx, "user-1", saltBarcode, 3)
	require.NoError(t, err)

	view, err := env.cart.Adjust("user-1", "dm-001", -1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)

	view, err = env.cart.Adjust("user-1", "dm-001", -2)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = env.cart.Adjust("user-1", "dm-001", 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = env.cart.AddByBarcode(ctx, "user-1", maggiBarcode, 1)
	require.NoError(t, err)
	env.cart.Clear("user-1")
	view = env.cart.Get("user-1")
	assert.Zero(t, view.Count)
	assert.Equal(t, "store-001", view.StoreID)
}

func TestCartService_SwitchingStoreEmptiesCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	selectStore(t, env, "user-1", "store-001")
	_, err := env.cart.AddByBarcode(ctx, "user-1", saltBarcode, 1)
	require.NoError(t, err)

	same := selectStore(t, env, "user-1", "store-001")
	assert.Equal(t, 1, same.Count)

	other := selectStore(t, env, "user-1", "store-002")
	assert.Zero(t, other.Count)
	assert.Equal(t, "store-002", other.StoreID)
}

func TestCartService_CartsAreIsolatedPerCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	selectStore(t, env, "user-1", "store-001")
	selectStore(t, env, "user-2", "store-001")

	_, err := env.cart.AddByBarcode(ctx, "user-1", saltBarcode, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, env.cart.Get("user-1").Count)
	assert.Zero(t, env.cart.Get("user-2").Count)
}

func TestCartService_UnknownStoreIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	selectStore(t, env, "user-1", "store-001")
	_, err := env.cart.AddByBarcode(ctx, "user-1", saltBarcode, 1)
	require.NoError(t, err)

	for _, storeID := range []string{"store-999", "  "} {
		_, err = env.cart.SelectStore(ctx, "user-1", storeID)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err), storeID)
	}

	// the existing cart survives a rejected selection
	view := env.cart.Get("user-1")
	assert.Equal(t, "store-001", view.StoreID)
	assert.Equal(t, 1, view.Count)

	_, err = env.cart.SelectStore(ctx, "user-2", "store-999")
	require.Error(t, err)
	_, err = env.cart.AddByBarcode(ctx, "user-2", saltBarcode, 1)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
