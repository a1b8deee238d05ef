package subscription

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/domain/subscription"
)

// ===========================
// QuoteExpiry Use Case
// ===========================

// QuoteExpiryQuery 試算到期日
//
// 輸入：
// - PlanCode 或 Cadence 擇一（同時提供時以方案為準）
// - Start: YYYY-MM-DD
// - Backdated: 允許開始日早於今天
type QuoteExpiryQuery struct {
	PlanCode  string
	Cadence   string
	Start     string
	Backdated bool
}

// ExpiryView 到期日呈現
//
// Unbounded 為 true 時 Expiry 為空字串，呼叫者不可把它當成一般日期比較。
type ExpiryView struct {
	Start     string
	Cadence   string
	Expiry    string
	Unbounded bool
}

func newExpiryView(start subscription.Date, cadence subscription.Cadence, expiry subscription.Expiry) ExpiryView {
	view := ExpiryView{
		Start:     start.String(),
		Cadence:   cadence.String(),
		Unbounded: expiry.IsUnbounded(),
	}
	if d, ok := expiry.Date(); ok {
		view.Expiry = d.String()
	}
	return view
}

// QuoteExpiryUseCase 到期日試算（不寫入任何資料）
type QuoteExpiryUseCase struct {
	planRepo subscription.PlanRepository
	clock    shared.Clock
}

// NewQuoteExpiryUseCase 創建 Use Case 實例
func NewQuoteExpiryUseCase(planRepo subscription.PlanRepository, clock shared.Clock) *QuoteExpiryUseCase {
	return &QuoteExpiryUseCase{planRepo: planRepo, clock: clock}
}

// Execute 執行試算
//
// 錯誤處理：
// - ErrInvalidDate: 開始日期格式錯誤
// - ErrInvalidStartDate: 開始日早於今天且未標記補登
// - ErrPlanNotFound / ErrInvalidCadence: 方案或週期無效
func (uc *QuoteExpiryUseCase) Execute(query QuoteExpiryQuery) (*ExpiryView, error) {
	start, err := subscription.ParseDate(query.Start)
	if err != nil {
		return nil, err
	}

	cadence, err := uc.resolveCadence(query)
	if err != nil {
		return nil, err
	}

	expiry, err := subscription.ComputeTerm(subscription.TermRequest{
		Start:       start,
		Cadence:     cadence,
		ScheduledOn: subscription.DateOf(uc.clock.Now(), nil),
		Backdated:   query.Backdated,
	})
	if err != nil {
		return nil, err
	}

	view := newExpiryView(start, cadence, expiry)
	return &view, nil
}

func (uc *QuoteExpiryUseCase) resolveCadence(query QuoteExpiryQuery) (subscription.Cadence, error) {
	if query.PlanCode == "" {
		return subscription.ParseCadence(query.Cadence)
	}
	code, err := subscription.NewPlanCode(query.PlanCode)
	if err != nil {
		return "", err
	}
	plan, err := uc.planRepo.FindByCode(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to find plan: %w", err)
	}
	return plan.Cadence(), nil
}
