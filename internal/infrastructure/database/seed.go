package database

import (
	"errors"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"github.com/sangkips/scango-api/internal/domain/enum"
	"github.com/sangkips/scango-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DevEmployeeID and DevEmployeePassword are the development cashier login
const (
	DevEmployeeID       = "admin"
	DevEmployeePassword = "1234"
)

var seedProducts = []entity.ProductMaster{
	{ID: "dm-001", Barcode: "8901088136945", Name: "Tata Salt Vacuum Evaporated", Brand: "Tata Consumer Products", Weight: "1kg", Category: "Staples", MRP: 2800,
		ImageURL: "https://images.unsplash.com/photo-1518110903427-0ac99672692e?auto=format&fit=crop&w=200&h=200"},
	{ID: "dm-002", Barcode: "8901296038567", Name: "Bru Instant Coffee Powder", Brand: "Hindustan Unilever", Weight: "100g", Category: "Beverages", MRP: 24500,
		ImageURL: "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?auto=format&fit=crop&w=200&h=200"},
	{ID: "dm-003", Barcode: "8904256023283", Name: "Dabur Red Ayurvedic Paste", Brand: "Dabur India", Weight: "200g", Category: "Personal Care", MRP: 12500,
		ImageURL: "https://images.unsplash.com/photo-1559591937-e68214c549b2?auto=format&fit=crop&w=200&h=200"},
	{ID: "dm-004", Barcode: "9556781001107", Name: "Maggi 2-Minute Masala Noodles", Brand: "Nestle", Weight: "70g", Category: "Instant Food", MRP: 1400,
		ImageURL: "https://images.unsplash.com/photo-1612927335702-582178379c2e?auto=format&fit=crop&w=200&h=200"},
	{ID: "dm-005", Barcode: "8902519002983", Name: "Parle-G Glucose Biscuits", Brand: "Parle Products", Weight: "800g", Category: "Biscuits", MRP: 9000,
		ImageURL: "https://images.unsplash.com/photo-1558961363-fa8fdf82db35?auto=format&fit=crop&w=200&h=200"},
	{ID: "dm-006", Barcode: "8901725013745", Name: "Lizol Disinfectant Surface Cleaner", Brand: "Reckitt Benckiser", Weight: "500ml", Category: "Household", MRP: 11500,
		ImageURL: "https://images.unsplash.com/photo-1584622781564-1d9876a13d00?auto=format&fit=crop&w=200&h=200"},
}

// percent off MRP per product in every seeded store
var seedDiscounts = map[string]int64{
	"dm-001": 10, "dm-002": 15, "dm-003": 12, "dm-004": 0, "dm-005": 5, "dm-006": 8,
}

var seedStores = []entity.Store{
	{ID: "store-001", Name: "ScanGo Malad West", Address: "Link Road, Malad West, Mumbai", Latitude: 19.1860, Longitude: 72.8485},
	{ID: "store-002", Name: "ScanGo Powai (Premium)", Address: "Hiranandani Gardens, Powai, Mumbai", Latitude: 19.1197, Longitude: 72.9051},
	{ID: "store-003", Name: "ScanGo Thane (Wholesale)", Address: "Ghodbunder Road, Thane West", Latitude: 19.2183, Longitude: 72.9781},
}

var seedCounters = []entity.Counter{
	{ID: "c1", Number: 1, QueueSize: 8, Active: true},
	{ID: "c2", Number: 2, QueueSize: 3, Active: true},
	{ID: "c3", Number: 3, QueueSize: 12, Active: true},
	{ID: "c4", Number: 4, QueueSize: 1, Active: true},
}

// SeedCatalog loads the product and store price reference data
func SeedCatalog(db *gorm.DB, log *zap.Logger) error {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seedProducts).Error; err != nil {
		return err
	}

	var prices []entity.StoreInventory
	for _, store := range seedStores {
		for _, p := range seedProducts {
			off := p.MRP * entity.Money(seedDiscounts[p.ID]) / 100
			prices = append(prices, entity.StoreInventory{StoreID: store.ID, Barcode: p.Barcode, Price: p.MRP - off})
		}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&prices).Error; err != nil {
		return err
	}

	log.Info("catalog seeded", zap.Int("products", len(seedProducts)), zap.Int("prices", len(prices)))
	return nil
}

// SeedLocal loads stores and counters into the embedded store
func SeedLocal(db *gorm.DB, log *zap.Logger) error {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seedStores).Error; err != nil {
		return err
	}
	counters := make([]entity.Counter, 0, len(seedCounters)*len(seedStores))
	for _, store := range seedStores {
		for _, c := range seedCounters {
			c.ID = store.ID + "-" + c.ID
			c.StoreID = store.ID
			counters = append(counters, c)
		}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&counters).Error; err != nil {
		return err
	}
	log.Info("stores seeded", zap.Int("stores", len(seedStores)), zap.Int("counters", len(counters)))
	return nil
}

// SeedDevEmployee creates the development cashier account if it is missing
func SeedDevEmployee(db *gorm.DB, log *zap.Logger) error {
	var existing entity.Employee
	err := db.Where("employee_id = ?", DevEmployeeID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(DevEmployeePassword)
	if err != nil {
		return err
	}
	emp := entity.Employee{
		EmployeeID:   DevEmployeeID,
		Name:         "Admin",
		Role:         enum.EmployeeRoleCashier,
		PasswordHash: hash,
		Active:       true,
	}
	if err := db.Create(&emp).Error; err != nil {
		return err
	}
	log.Warn("development employee created", zap.String("employee_id", DevEmployeeID))
	return nil
}
