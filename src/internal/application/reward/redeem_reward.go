package reward

import (
	"fmt"

	pointsapp "github.com/jackyeh168/club_ledger/src/internal/application/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/reward"
)

// ===========================
// RedeemReward Use Case
// ===========================

// RedeemRewardCommand 兌換獎品的命令
type RedeemRewardCommand struct {
	MemberID       string
	RewardID       string
	IdempotencyKey string // 選填，同一會員重送相同鍵時回傳原交易
}

// RedeemRewardResult 兌換獎品的結果
type RedeemRewardResult struct {
	TransactionID string
	RewardID      int64
	RewardName    string
	Cost          int
	Balance       int
	Replayed      bool
}

// RedeemRewardUseCase 兌換獎品 Use Case
//
// 職責：
// 1. 查找獎品（不存在 → ErrRewardNotFound，不產生交易）
// 2. 以獎品成本、獎品參照、獎品名稱執行帳本兌換
//
// 成功時恰好產生一筆扣點交易；任何失敗都不產生交易。
type RedeemRewardUseCase struct {
	rewardRepo reward.RewardRepository
	redeem     *pointsapp.RedeemPointsUseCase
}

// NewRedeemRewardUseCase 創建 Use Case 實例
func NewRedeemRewardUseCase(
	rewardRepo reward.RewardRepository,
	redeem *pointsapp.RedeemPointsUseCase,
) *RedeemRewardUseCase {
	return &RedeemRewardUseCase{
		rewardRepo: rewardRepo,
		redeem:     redeem,
	}
}

// Execute 執行兌換獎品
//
// 錯誤處理：
// - ErrInvalidRewardID: 獎品 ID 格式無效
// - ErrRewardNotFound: 獎品不存在
// - points.ErrInsufficientBalance: 餘額不足
// - points.ErrIdempotencyKeyReused: 冪等鍵已用於其他獎品或其他成本
func (uc *RedeemRewardUseCase) Execute(cmd RedeemRewardCommand) (*RedeemRewardResult, error) {
	rewardID, err := reward.RewardIDFromString(cmd.RewardID)
	if err != nil {
		return nil, err
	}

	r, err := uc.rewardRepo.FindByID(nil, rewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find reward: %w", err)
	}

	ref := r.Ref()
	written, err := uc.redeem.Execute(pointsapp.RedeemPointsCommand{
		MemberID:       cmd.MemberID,
		Amount:         r.Cost().Value(),
		RewardID:       ref.ID,
		RewardName:     ref.Name,
		Description:    r.Name(),
		IdempotencyKey: cmd.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return &RedeemRewardResult{
		TransactionID: written.TransactionID,
		RewardID:      ref.ID,
		RewardName:    ref.Name,
		Cost:          -written.Delta,
		Balance:       written.Balance,
		Replayed:      written.Replayed,
	}, nil
}
