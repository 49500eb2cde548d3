package service

import (
	"context"
	"testing"

	"github.com/sangkips/scango-api/pkg/apperror"
	"github.com/sangkips/scango-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.checkoutOne(t, "user-1", saltBarcode, "CASH")
	second := env.checkoutOne(t, "user-1", maggiBarcode, "CARD")
	other := env.checkoutOne(t, "user-2", maggiBarcode, "UPI")

	page, err := env.histories.List(ctx, "user-1", &pagination.PaginationParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
	ids := []string{page.Items[0].ID, page.Items[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	got, err := env.histories.Get(ctx, "user-1", first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ReceiptNumber, got.ReceiptNumber)

	_, err = env.histories.Get(ctx, "user-1", other.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHistoryService_Unavailable(t *testing.T) {
	svc := NewHistoryService(brokenHistory{})

	_, err := svc.List(context.Background(), "user-1", &pagination.PaginationParams{})
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
}
