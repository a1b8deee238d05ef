package points

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

// ===========================
// LedgerRepository 介面
// ===========================

// LedgerRepository 帳本交易倉儲介面（只追加）
//
// 設計原則：
// 1. 依賴倒置原則（DIP）：Domain Layer 定義介面，Infrastructure Layer 實作
// 2. 沒有 Update / Delete：交易一旦寫入即不可變
// 3. Append 是條件寫入：(member_id, sequence) 唯一，並行寫入者只有一個成功
//
// 事務使用範例：
//
//	txManager.InTransaction(func(ctx shared.TransactionContext) error {
//	    txs, _ := repo.FindByMemberID(ctx, memberID)
//	    ledger, _ := NewLedger(memberID, txs)
//	    tx, err := ledger.Redeem(cmd, now)
//	    if err != nil {
//	        return err
//	    }
//	    return repo.Append(ctx, tx)
//	})
type LedgerRepository interface {
	// FindByMemberID 載入會員全部交易（依 sequence 排序）
	// 會員沒有交易時回傳空 slice，不是錯誤
	FindByMemberID(ctx shared.TransactionContext, memberID MemberID) ([]*LedgerTransaction, error)

	// Append 追加交易
	// 錯誤：
	// - ErrConcurrentAppend：序號已被其他寫入者佔用
	// - ErrDuplicateIdempotencyKey：冪等鍵已被使用
	// - shared.ErrUnavailable：儲存層錯誤
	Append(ctx shared.TransactionContext, tx *LedgerTransaction) error
}
