package reward

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/reward"
)

// RewardView 獎品目錄項目
type RewardView struct {
	ID       int64
	Name     string
	ImageRef string
	Cost     int
}

// ListRewardsUseCase 列出獎品目錄
type ListRewardsUseCase struct {
	rewardRepo reward.RewardRepository
}

// NewListRewardsUseCase 創建 Use Case 實例
func NewListRewardsUseCase(rewardRepo reward.RewardRepository) *ListRewardsUseCase {
	return &ListRewardsUseCase{rewardRepo: rewardRepo}
}

// Execute 依獎品 ID 排序回傳目錄
func (uc *ListRewardsUseCase) Execute() ([]RewardView, error) {
	rewards, err := uc.rewardRepo.List(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	views := make([]RewardView, 0, len(rewards))
	for _, r := range rewards {
		views = append(views, RewardView{
			ID:       r.ID().Int64(),
			Name:     r.Name(),
			ImageRef: r.ImageRef(),
			Cost:     r.Cost().Value(),
		})
	}
	return views, nil
}
