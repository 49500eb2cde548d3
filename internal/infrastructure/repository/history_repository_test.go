package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository_ListIsScopedAndNewestFirst(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	orders := []entity.Order{
		{ID: "DM-AAA111", CustomerID: "user-9876543210", ReceiptNumber: "RCP-100001", CreatedAt: base},
		{ID: "DM-BBB222", CustomerID: "user-9876543210", ReceiptNumber: "RCP-100002", CreatedAt: base.Add(time.Hour)},
		{ID: "DM-CCC333", CustomerID: "user-9000000000", ReceiptNumber: "RCP-100003", CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range orders {
		orders[i].PaymentMethod = enum.PaymentMethodUPI
		orders[i].Status = enum.PaymentStatusPaid
		require.NoError(t, repo.Append(ctx, &orders[i]))
	}

	got, total, err := repo.List(ctx, "user-9876543210", &pagination.PaginationParams{Page: 1, PerPage: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	assert.Equal(t, "DM-BBB222", got[0].ID)
	assert.Equal(t, "DM-AAA111", got[1].ID)

	got, total, err = repo.List(ctx, "", &pagination.PaginationParams{Page: 1, PerPage: 15})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, got)
}

func TestHistoryRepository_FindByOrderID(t *testing.T) {
	repo := NewHistoryRepository(newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, &entity.Order{ID: "DM-XYZ789", CustomerID: "user-1", ReceiptNumber: "RCP-123456"}))

	got, err := repo.FindByOrderID(ctx, "DM-XYZ789")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "RCP-123456", got.ReceiptNumber)

	got, err = repo.FindByOrderID(ctx, "DM-NOPE00")
	require.NoError(t, err)
	assert.Nil(t, got)
}
