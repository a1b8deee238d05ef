package subscription

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

// PlanRepository 方案目錄（唯讀參考資料）
type PlanRepository interface {
	// FindByCode 依代碼查找方案
	// 錯誤：ErrPlanNotFound
	FindByCode(ctx shared.TransactionContext, code PlanCode) (Plan, error)

	// List 列出所有方案（依代碼排序）
	List(ctx shared.TransactionContext) ([]Plan, error)
}

// SubscriptionRepository 訂閱倉儲介面
//
// 只保存方案代碼、週期與開始日期；到期日由聚合推導。
type SubscriptionRepository interface {
	// Save 保存新訂閱
	Save(ctx shared.TransactionContext, sub *Subscription) error

	// FindByID 依 ID 查找訂閱
	// 錯誤：ErrSubscriptionNotFound
	FindByID(ctx shared.TransactionContext, id SubscriptionID) (*Subscription, error)

	// FindByMemberID 列出會員的所有訂閱（依開始日排序）
	FindByMemberID(ctx shared.TransactionContext, memberID MemberID) ([]*Subscription, error)

	// Update 更新訂閱（樂觀鎖：版本不符時回傳 ErrSubscriptionConflict）
	Update(ctx shared.TransactionContext, sub *Subscription) error
}
