package points

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// ===========================
// GORMLedgerRepository
// ===========================

// GORMLedgerRepository 帳本交易倉儲實現（GORM）
//
// 設計原則：
// - 實作 points.LedgerRepository 接口
// - 只追加：沒有 Update / Delete
// - 將 GORM 錯誤轉換為 Domain 錯誤（唯一約束 → 並行衝突或冪等鍵重複，其他 → ErrUnavailable）
type GORMLedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 創建新的帳本倉儲實例
func NewLedgerRepository(db *gorm.DB) points.LedgerRepository {
	return &GORMLedgerRepository{db: db}
}

// FindByMemberID 載入會員全部交易（依 sequence 排序）
func (r *GORMLedgerRepository) FindByMemberID(ctx shared.TransactionContext, memberID points.MemberID) ([]*points.LedgerTransaction, error) {
	db := persistence.GetDB(ctx, r.db)

	var models []LedgerTransactionGORM
	result := db.Where("member_id = ?", memberID.String()).Order("sequence ASC").Find(&models)
	if result.Error != nil {
		return nil, shared.WrapUnavailable("load ledger", result.Error)
	}

	transactions := make([]*points.LedgerTransaction, 0, len(models))
	for i := range models {
		tx, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// Append 追加交易
//
// 錯誤處理：
// - idx_ledger_member_idempotency 違反 → ErrDuplicateIdempotencyKey
// - idx_ledger_member_sequence 違反 → ErrConcurrentAppend
// - 其他資料庫錯誤 → ErrUnavailable
func (r *GORMLedgerRepository) Append(ctx shared.TransactionContext, tx *points.LedgerTransaction) error {
	db := persistence.GetDB(ctx, r.db)

	model := toGORM(tx, time.Now().UTC())
	result := db.Create(model)
	if result.Error != nil {
		if persistence.ViolatesConstraint(result.Error, "idempotency") {
			return points.ErrDuplicateIdempotencyKey.WithContext(
				"member_id", tx.MemberID().String(),
				"idempotency_key", tx.IdempotencyKey(),
			)
		}
		if persistence.IsUniqueConstraintError(result.Error) {
			return points.ErrConcurrentAppend.WithContext(
				"member_id", tx.MemberID().String(),
				"sequence", tx.Sequence(),
			)
		}
		return shared.WrapUnavailable("append ledger transaction", result.Error)
	}

	return nil
}
