package repository

import (
	"context"

	"github.com/sangkips/scango-api/internal/domain/entity"
)

// CatalogRepository reads product reference data
type CatalogRepository interface {
	// GetMasterByBarcode returns nil, nil when the barcode is unknown
	GetMasterByBarcode(ctx context.Context, barcode string) (*entity.ProductMaster, error)
	// GetStorePrice returns nil, nil when the store has no override
	GetStorePrice(ctx context.Context, storeID, barcode string) (*entity.StoreInventory, error)
}
