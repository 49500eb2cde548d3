package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/repository"
	"github.com/sangkips/scango-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/scango-api/internal/infrastructure/repository"
	"github.com/sangkips/scango-api/pkg/pagination"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	saltBarcode  = "8901088136945" // dm-001, MRP 28.00, 10% off in every store
	maggiBarcode = "9556781001107" // dm-004, MRP 14.00, no discount
)

var errBackendDown = errors.New("connection reset by peer")

// testEnv wires services over a seeded in-memory local store
type testEnv struct {
	db        *gorm.DB
	receipts  repository.ReceiptStore
	history   repository.HistoryRepository
	stores    repository.StoreRepository
	catalog   *CatalogService
	cart      *CartService
	checkout  *CheckoutService
	receipt   *ReceiptService
	histories *HistoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()

	db, err := database.NewLocalDB(":memory:", false, log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateLocal(db, log))
	require.NoError(t, database.SeedCatalog(db, log))
	require.NoError(t, database.SeedLocal(db, log))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		db:       db,
		receipts: infraRepo.NewReceiptRepository(db),
		history:  infraRepo.NewHistoryRepository(db),
		stores:   infraRepo.NewStoreRepository(db),
	}
	env.catalog = NewCatalogService(infraRepo.NewCatalogRepository(db), log)
	env.cart = NewCartService(env.catalog, env.stores)
	env.checkout = NewCheckoutService(env.receipts, env.history, env.stores, 5, log)
	env.receipt = NewReceiptService(env.receipts, env.history, false, log)
	env.histories = NewHistoryService(env.history)
	return env
}

// checkoutOne scans one barcode into a fresh cart and checks out
func (e *testEnv) checkoutOne(t *testing.T, customerID, barcode, method string) *entity.Order {
	t.Helper()
	ctx := context.Background()
	_, err := e.cart.SelectStore(ctx, customerID, "store-001")
	require.NoError(t, err)
	_, err = e.cart.AddByBarcode(ctx, customerID, barcode, 1)
	require.NoError(t, err)

	storeID, items := e.cart.Snapshot(customerID)
	out, err := e.checkout.Checkout(ctx, &CheckoutInput{
		CustomerID:    customerID,
		StoreID:       storeID,
		Items:         items,
		PaymentMethod: method,
	})
	require.NoError(t, err)
	e.cart.Clear(customerID)
	return out.Order
}

type brokenHistory struct{}

func (brokenHistory) Append(ctx context.Context, order *entity.Order) error {
	return errBackendDown
}

func (brokenHistory) List(ctx context.Context, customerID string, params *pagination.PaginationParams) ([]entity.Order, int64, error) {
	return nil, 0, errBackendDown
}

func (brokenHistory) FindByOrderID(ctx context.Context, orderID string) (*entity.Order, error) {
	return nil, errBackendDown
}

type brokenCatalog struct{}

func (brokenCatalog) GetMasterByBarcode(ctx context.Context, barcode string) (*entity.ProductMaster, error) {
	return nil, errBackendDown
}

func (brokenCatalog) GetStorePrice(ctx context.Context, storeID, barcode string) (*entity.StoreInventory, error) {
	return nil, errBackendDown
}
