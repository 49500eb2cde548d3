package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sangkips/scango-api/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewRemoteDB prepares the networked store with the configured driver.
// It does not dial; an unreachable server is found by RemoteSchema.Ensure
// and by the first query, so a remote that is down at boot can still be
// used once it comes back.
func NewRemoteDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.DSN(),
			SkipInitializeWithVersion: true,
		})
	default:
		return nil, fmt.Errorf("unsupported remote driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               newGormLogger(log, debug),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open remote database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("remote database configured", zap.String("driver", cfg.Driver), zap.String("host", cfg.Host))
	return db, nil
}

// RemoteSchema migrates and seeds the networked store the first time it is
// reachable. Until then Ensure fails and callers stay on the local store.
type RemoteSchema struct {
	db      *gorm.DB
	timeout time.Duration
	log     *zap.Logger

	mu    sync.Mutex
	ready atomic.Bool
}

// NewRemoteSchema creates a lazy migrator. timeout bounds the reachability check.
func NewRemoteSchema(db *gorm.DB, timeout time.Duration, log *zap.Logger) *RemoteSchema {
	return &RemoteSchema{db: db, timeout: timeout, log: log}
}

// Ensure returns nil once the remote has been reached and migrated
func (s *RemoteSchema) Ensure(ctx context.Context) error {
	if s.ready.Load() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready.Load() {
		return nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	err = sqlDB.PingContext(pctx)
	cancel()
	if err != nil {
		return fmt.Errorf("remote database unreachable: %w", err)
	}

	db := s.db.WithContext(ctx)
	if err := AutoMigrateShared(db, s.log); err != nil {
		return err
	}
	if err := SeedCatalog(db, s.log); err != nil {
		s.log.Warn("Failed to seed remote catalog", zap.Error(err))
	}

	s.ready.Store(true)
	s.log.Info("remote database ready")
	return nil
}

// Ready reports whether Ensure has succeeded
func (s *RemoteSchema) Ready() bool {
	return s.ready.Load()
}
