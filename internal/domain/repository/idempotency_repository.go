package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/scango-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and principal
	GetByKey(ctx context.Context, key, principalID string) (*entity.IdempotencyKey, error)
	// Reserve inserts a pending key. It returns false when the key is already held.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete records the response for a reserved key
	Complete(ctx context.Context, id uuid.UUID, code int, body string) error
	// Release drops a key so the client can retry with it
	Release(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
