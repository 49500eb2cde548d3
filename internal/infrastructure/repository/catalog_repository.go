package repository

import (
	"context"
	"errors"

	"github.com/sangkips/scango-api/internal/domain/entity"
	domainRepo "github.com/sangkips/scango-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a catalog repository over one backend
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetMasterByBarcode(ctx context.Context, barcode string) (*entity.ProductMaster, error) {
	var master entity.ProductMaster
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&master).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &master, nil
}

func (r *catalogRepository) GetStorePrice(ctx context.Context, storeID, barcode string) (*entity.StoreInventory, error) {
	var inv entity.StoreInventory
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND barcode = ?", storeID, barcode).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// fallbackCatalogRepository reads reference data remote-first
type fallbackCatalogRepository struct {
	remote domainRepo.CatalogRepository
	local  domainRepo.CatalogRepository
	f      *fallback
}

// NewFallbackCatalogRepository composes two catalog backends. remote may be nil.
func NewFallbackCatalogRepository(remote, local domainRepo.CatalogRepository, opts FallbackOptions) domainRepo.CatalogRepository {
	resolve := opts.Resolver
	if remote == nil {
		resolve = LocalOnly
	}
	return &fallbackCatalogRepository{
		remote: remote,
		local:  local,
		f:      newFallback(resolve, opts.Health, opts.Timeout, opts.Logger),
	}
}

func (r *fallbackCatalogRepository) GetMasterByBarcode(ctx context.Context, barcode string) (*entity.ProductMaster, error) {
	return call(ctx, r.f, "catalog_master", barcode, false,
		func(ctx context.Context) (*entity.ProductMaster, error) { return r.remote.GetMasterByBarcode(ctx, barcode) },
		func(ctx context.Context) (*entity.ProductMaster, error) { return r.local.GetMasterByBarcode(ctx, barcode) },
	)
}

func (r *fallbackCatalogRepository) GetStorePrice(ctx context.Context, storeID, barcode string) (*entity.StoreInventory, error) {
	return call(ctx, r.f, "catalog_price", storeID+"/"+barcode, false,
		func(ctx context.Context) (*entity.StoreInventory, error) { return r.remote.GetStorePrice(ctx, storeID, barcode) },
		func(ctx context.Context) (*entity.StoreInventory, error) { return r.local.GetStorePrice(ctx, storeID, barcode) },
	)
}
