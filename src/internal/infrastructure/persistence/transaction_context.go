package persistence

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文實作
// 設計原則：
// 1. 實作 shared.TransactionContext 介面（標記介面）
// 2. 封裝 *gorm.DB，避免洩漏到 Domain Layer
// 3. 提供 GetDB() 方法供 Infrastructure Layer 內部使用
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
// 這個方法不在 shared.TransactionContext 介面中，Domain Layer 無法訪問 GORM
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// dbProvider Repository 從 TransactionContext 取出 *gorm.DB 的介面
type dbProvider interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// GetDB 依可選事務參與模式選擇 DB
//
// 行為：
//   - ctx 為 GORM 事務上下文：使用事務中的 DB
//   - ctx == nil：使用預設 DB（auto-commit 模式）
func GetDB(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if ctx != nil {
		if txCtx, ok := ctx.(dbProvider); ok {
			return txCtx.GetDB()
		}
	}
	return fallback
}
