package repository

import (
	"context"

	"github.com/sangkips/scango-api/internal/domain/entity"
)

// StoreRepository reads outlets and their billing counters
type StoreRepository interface {
	List(ctx context.Context) ([]entity.Store, error)
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	ListActiveCounters(ctx context.Context, storeID string) ([]entity.Counter, error)
}
