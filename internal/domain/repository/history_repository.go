package repository

import (
	"context"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/pkg/pagination"
)

// HistoryRepository is the customer's append-only order log
type HistoryRepository interface {
	Append(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, customerID string, params *pagination.PaginationParams) ([]entity.Order, int64, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error)
}
