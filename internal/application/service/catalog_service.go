package service

import (
	"context"
	"strings"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/pkg/apperror"
	"go.uber.org/zap"
)

// CatalogService resolves scanned barcodes to store-priced products
type CatalogService struct {
	catalog repository.CatalogRepository
	log     *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalog repository.CatalogRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, log: log}
}

// Resolve looks up the master record and applies the store's price, if any.
// A price outside [0, mrp] is bad reference data and is rejected, not clamped.
func (s *CatalogService) Resolve(ctx context.Context, barcode, storeID string) (*entity.Product, error) {
	barcode = strings.TrimSpace(barcode)
	storeID = strings.TrimSpace(storeID)
	if barcode == "" || storeID == "" {
		return nil, apperror.NewBadRequestError("Barcode and store are required")
	}

	master, err := s.catalog.GetMasterByBarcode(ctx, barcode)
	if err != nil {
		return nil, apperror.NewPersistenceError("Catalog unavailable, please retry", err)
	}
	if master == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	override, err := s.catalog.GetStorePrice(ctx, storeID, barcode)
	if err != nil {
		return nil, apperror.NewPersistenceError("Catalog unavailable, please retry", err)
	}

	product := entity.ResolveProduct(master, storeID, override)
	if !product.HasValidPrice() {
		s.log.Error("catalog price outside [0, mrp]",
			zap.String("barcode", barcode),
			zap.String("store_id", storeID),
			zap.Stringer("price", product.Price),
			zap.Stringer("mrp", product.MRP),
		)
		return nil, apperror.NewIntegrityError("Product price data is inconsistent")
	}

	return product, nil
}
