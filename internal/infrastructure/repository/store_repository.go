package repository

import (
	"context"
	"errors"

	"github.com/sangkips/scango-api/internal/domain/entity"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a store directory repository
func NewStoreRepository(db *gorm.DB) domainRepo.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) List(ctx context.Context) ([]entity.Store, error) {
	var stores []entity.Store
	err := r.db.WithContext(ctx).Order("id ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	var store entity.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) ListActiveCounters(ctx context.Context, storeID string) ([]entity.Counter, error) {
	var counters []entity.Counter
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND active = ?", storeID, true).
		Order("number ASC").
		Find(&counters).Error
	return counters, err
}
