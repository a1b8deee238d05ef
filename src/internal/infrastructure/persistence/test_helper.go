package persistence

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 測試輔助函數
// ===========================

// NewTestDB 創建測試用的 SQLite in-memory 資料庫並遷移指定模型
//
// 設計原則：
// 1. 隔離性：每個測試使用獨立的 in-memory DB
// 2. 真實性：使用真實 SQL 引擎（唯一索引、部分索引都會生效），而非 Mock
// 3. 單一連線：in-memory DB 隨連線存在，並行測試的事務在連線池排隊
//
// 測試結束時自動關閉連線。
func NewTestDB(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // 測試時靜音
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("Failed to migrate test database: %v", err)
		}
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}
