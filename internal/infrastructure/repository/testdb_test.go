package repository

import (
	"testing"

	"github.com/sangkips/scango-api/internal/infrastructure/database"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewLocalDB(":memory:", false, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateLocal(db, zap.NewNop()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
