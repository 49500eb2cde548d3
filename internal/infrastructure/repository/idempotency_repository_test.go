package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(key string, ttl time.Duration) *entity.IdempotencyKey {
	return &entity.IdempotencyKey{
		Key:         key,
		PrincipalID: "user-9876543210",
		Endpoint:    "POST /api/v1/checkout",
		RequestHash: "abc",
		ExpiresAt:   time.Now().Add(ttl),
	}
}

func TestIdempotencyRepository_ReserveIsExclusive(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()

	first := newKey("checkout-1", time.Hour)
	ok, err := repo.Reserve(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Reserve(ctx, newKey("checkout-1", time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	held, err := repo.GetByKey(ctx, "checkout-1", "user-9876543210")
	require.NoError(t, err)
	require.NotNil(t, held)
	assert.True(t, held.IsPending())

	// another principal may use the same key string
	other := newKey("checkout-1", time.Hour)
	other.PrincipalID = "user-1111111111"
	ok, err = repo.Reserve(ctx, other)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyRepository_CompleteAndRelease(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()

	done := newKey("checkout-2", time.Hour)
	_, err := repo.Reserve(ctx, done)
	require.NoError(t, err)
	require.NoError(t, repo.Complete(ctx, done.ID, 201, `{"success":true}`))

	got, err := repo.GetByKey(ctx, "checkout-2", done.PrincipalID)
	require.NoError(t, err)
	assert.False(t, got.IsPending())
	assert.Equal(t, 201, got.ResponseCode)
	assert.Equal(t, `{"success":true}`, got.ResponseBody)

	failed := newKey("checkout-3", time.Hour)
	_, err = repo.Reserve(ctx, failed)
	require.NoError(t, err)
	require.NoError(t, repo.Release(ctx, failed.ID))
	ok, err := repo.Reserve(ctx, newKey("checkout-3", time.Hour))
	require.NoError(t, err)
	assert.True(t, ok, "a released key can be used again")
}

func TestIdempotencyRepository_DeleteExpired(t *testing.T) {
	repo := NewIdempotencyRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Reserve(ctx, newKey("old", -time.Minute))
	require.NoError(t, err)
	_, err = repo.Reserve(ctx, newKey("fresh", time.Hour))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteExpired(ctx))

	old, err := repo.GetByKey(ctx, "old", "user-9876543210")
	require.NoError(t, err)
	assert.Nil(t, old)
	fresh, err := repo.GetByKey(ctx, "fresh", "user-9876543210")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}
