package subscription

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
)

// PlanView 方案目錄項目
type PlanView struct {
	Code     string
	Name     string
	Cadence  string
	Price    string // 十進位字串，保留兩位小數
	Currency string
}

// ListPlansUseCase 列出方案目錄
type ListPlansUseCase struct {
	planRepo subscription.PlanRepository
}

// NewListPlansUseCase 創建 Use Case 實例
func NewListPlansUseCase(planRepo subscription.PlanRepository) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo}
}

// Execute 依代碼排序回傳方案
func (uc *ListPlansUseCase) Execute() ([]PlanView, error) {
	plans, err := uc.planRepo.List(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	views := make([]PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, PlanView{
			Code:     p.Code().String(),
			Name:     p.Name(),
			Cadence:  p.Cadence().String(),
			Price:    p.Price().StringFixed(2),
			Currency: p.Currency(),
		})
	}
	return views, nil
}
