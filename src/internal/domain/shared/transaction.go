package shared

// TransactionContext 事務上下文介面
//
// 設計決策：可選事務參與模式（Optional Transaction Participation）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// Repository 方法約束：
// - 寫操作（Append、Save、Update）必須在事務中，ctx non-nil
// - 讀操作（FindXXX、ExistsXXX）可傳 nil
//
// 範例：
//
//	txManager.InTransaction(func(ctx TransactionContext) error {
//	    transactions, _ := ledgerRepo.FindByMemberID(ctx, memberID)
//	    ledger, _ := points.NewLedger(memberID, transactions)
//	    tx, err := ledger.Redeem(amount, rewardRef, description, "", now)
//	    if err != nil {
//	        return err
//	    }
//	    return ledgerRepo.Append(ctx, tx)
//	})
//
// 這是一個標記介面，Infrastructure Layer 負責實作具體的事務封裝（GORM）。
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// fn 回傳錯誤或 panic 時整個事務回滾，成功時提交。
type TransactionManager interface {
	InTransaction(fn func(ctx TransactionContext) error) error
}
