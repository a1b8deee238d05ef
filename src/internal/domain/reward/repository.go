package reward

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

// RewardRepository 獎品目錄（唯讀）
type RewardRepository interface {
	// FindByID 依 ID 查找獎品
	// 錯誤：ErrRewardNotFound
	FindByID(ctx shared.TransactionContext, id RewardID) (Reward, error)

	// List 列出所有獎品（依 ID 排序）
	List(ctx shared.TransactionContext) ([]Reward, error)
}
