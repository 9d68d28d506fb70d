// Package testutil 为各层测试提供内存 sqlite 上的 Store
package testutil

import (
	"context"
	"testing"

	"HobbyHop/internal/repository/mysql"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewStore 每次调用都得到一个全新的空库，并写入一个“户外”分类
func NewStore(t *testing.T) (*mysql.Store, uint64) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库只存在于单个连接上
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.AutoMigrate(db))

	store := mysql.NewStore(db)
	ctx := context.Background()
	require.NoError(t, store.Categories.Seed(ctx, "户外"))
	list, err := store.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	return store, list[0].ID
}
