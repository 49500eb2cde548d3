package database

import (
	"fmt"

	"github.com/sangkips/scango-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrateShared creates the tables both backends carry
func AutoMigrateShared(db *gorm.DB, log *zap.Logger) error {
	log.Info("running shared migrations")
	err := db.AutoMigrate(
		&entity.ProductMaster{},
		&entity.StoreInventory{},
		&entity.Receipt{},
		&entity.Employee{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// AutoMigrateLocal creates the shared tables plus the device-only ones
func AutoMigrateLocal(db *gorm.DB, log *zap.Logger) error {
	if err := AutoMigrateShared(db, log); err != nil {
		return err
	}
	log.Info("running local migrations")
	err := db.AutoMigrate(
		&entity.Store{},
		&entity.Counter{},
		&entity.Order{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run local migrations: %w", err)
	}
	return nil
}
