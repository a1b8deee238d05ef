package persistence

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager GORM 實作的事務管理器
//
// 行為約定：
// - fn 回傳 nil：提交
// - fn 回傳錯誤：回滾，原樣回傳 fn 的錯誤
// - fn panic：回滾後重新 panic（由呼叫者處理）
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) shared.TransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一資料庫事務中執行 fn
func (m *GORMTransactionManager) InTransaction(fn func(ctx shared.TransactionContext) error) (err error) {
	tx := m.db.Begin()
	if tx.Error != nil {
		return shared.WrapUnavailable("begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(NewGORMTransactionContext(tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return shared.WrapUnavailable("commit transaction", err)
	}
	return nil
}
