package repository

import (
	"context"
	"errors"

	"github.com/sangkips/scango-api/internal/domain/entity"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/pagination"
	"gorm.io/gorm"
)

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates the order history log over the local store
func NewHistoryRepository(db *gorm.DB) domainRepo.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Append(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// List returns the customer's orders, newest first
func (r *historyRepository) List(ctx context.Context, customerID string, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(CustomerScope(WithCustomer(ctx, customerID)))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&orders).Error

	return orders, total, err
}

func (r *historyRepository) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
