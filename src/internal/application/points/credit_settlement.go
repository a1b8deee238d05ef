package points

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackyeh168/club_ledger/src/internal/application/common"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ===========================
// CreditSettlement Use Case
// ===========================

// CreditSettlementCommand 付款結算入帳命令
//
// 付款閘道的細節不在此處理：Reference 是閘道給的不透明確認碼，
// 同一確認碼重送時回傳原交易（冪等）。
type CreditSettlementCommand struct {
	MemberID  string
	Reference string
	Amount    string // 十進位字串，例如 "1250.00"
	Currency  string
}

// CreditSettlementResult 結算入帳結果
//
// 金額不足一點時 Credited 為 false，不產生交易。
type CreditSettlementResult struct {
	Credited bool
	Points   int
	*LedgerWriteResult
}

// CreditSettlementUseCase 結算入帳 Use Case
type CreditSettlementUseCase struct {
	writer     *LedgerWriter
	calculator *points.PointsCalculationService
	rate       points.ConversionRate
	publisher  shared.EventPublisher
	clock      shared.Clock
	logger     *slog.Logger
}

// NewCreditSettlementUseCase 創建 Use Case 實例
func NewCreditSettlementUseCase(
	writer *LedgerWriter,
	rate points.ConversionRate,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *CreditSettlementUseCase {
	return &CreditSettlementUseCase{
		writer:     writer,
		calculator: points.NewPointsCalculationService(),
		rate:       rate,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// Execute 執行結算入帳
//
// 執行流程：
// 1. 驗證結算確認（參照、金額）
// 2. 金額 → 積分：floor(金額 / 轉換率)
// 3. 以參照作為冪等鍵寫入 settlement 交易
func (uc *CreditSettlementUseCase) Execute(cmd CreditSettlementCommand) (*CreditSettlementResult, error) {
	memberID, err := points.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(cmd.Amount))
	if err != nil {
		return nil, points.ErrInvalidSettlement.WithContext("amount", cmd.Amount, "parse_error", err.Error())
	}
	settlement := points.Settlement{
		Reference: strings.TrimSpace(cmd.Reference),
		Amount:    amount,
		Currency:  strings.ToUpper(strings.TrimSpace(cmd.Currency)),
	}
	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	earned, err := uc.calculator.CalculateFromAmount(settlement.Amount, uc.rate)
	if err != nil {
		return nil, err
	}
	if earned.IsZero() {
		return &CreditSettlementResult{Credited: false}, nil
	}

	key := points.ScopedIdempotencyKey(points.ScopeSettlement, settlement.Reference)
	expect := points.ReplayExpectation{Delta: earned.Value(), Source: points.SourceSettlement}

	now := uc.clock.Now()
	outcome, err := uc.writer.write(memberID, key, expect, func(ledger *points.Ledger) (*points.LedgerTransaction, error) {
		return ledger.Earn(points.EarnCommand{
			Amount:         earned,
			Source:         points.SourceSettlement,
			SourceRef:      settlement.Reference,
			Description:    fmt.Sprintf("settlement %s %s", settlement.Amount.StringFixed(2), settlement.Currency),
			IdempotencyKey: key,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, "credit_settlement", outcome.events)
	return &CreditSettlementResult{
		Credited:          true,
		Points:            outcome.tx.Amount().Value(),
		LedgerWriteResult: newLedgerWriteResult(outcome),
	}, nil
}
