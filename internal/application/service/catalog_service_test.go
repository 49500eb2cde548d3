package service

import (
	"context"
	"testing"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	product, err := env.catalog.Resolve(ctx, saltBarcode, "store-001")
	require.NoError(t, err)
	assert.Equal(t, "dm-001", product.ID)
	assert.Equal(t, entity.Money(2800), product.MRP)
	assert.Equal(t, entity.Money(2520), product.Price)
	assert.Equal(t, entity.Money(280), product.Discount)
	assert.Equal(t, "store-001", product.StoreID)
}

func TestCatalogService_ResolveWithoutStoreOverrideUsesMRP(t *testing.T) {
	env := newTestEnv(t)

	product, err := env.catalog.Resolve(context.Background(), saltBarcode, "store-999")
	require.NoError(t, err)
	assert.Equal(t, product.MRP, product.Price)
	assert.Zero(t, product.Discount)
}

func TestCatalogService_ResolveErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.Resolve(ctx, "  ", "store-001")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = env.catalog.Resolve(ctx, "0000000000000", "store-001")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	broken := NewCatalogService(brokenCatalog{}, zap.NewNop())
	_, err = broken.Resolve(ctx, saltBarcode, "store-001")
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
	assert.ErrorIs(t, err, errBackendDown)
}

func TestCatalogService_RejectsPriceAboveMRP(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Model(&entity.StoreInventory{}).
		Where("store_id = ? AND barcode = ?", "store-002", maggiBarcode).
		Update("price", 9999).Error)

	_, err := env.catalog.Resolve(context.Background(), maggiBarcode, "store-002")
	assert.Equal(t, apperror.KindIntegrity, apperror.KindOf(err))
}
