package points

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// GetPointsBalanceQuery 查詢積分餘額的查詢
type GetPointsBalanceQuery struct {
	MemberID string
}

// GetPointsBalanceResult 查詢積分餘額的結果
type GetPointsBalanceResult struct {
	MemberID         string
	Balance          int
	TransactionCount int
}

// GetPointsBalanceUseCase 查詢積分餘額 Use Case
//
// 餘額是交易紀錄的投影，每次查詢都由完整帳本重新加總。
type GetPointsBalanceUseCase struct {
	ledgerRepo points.LedgerRepository
}

// NewGetPointsBalanceUseCase 創建 Use Case 實例
func NewGetPointsBalanceUseCase(repo points.LedgerRepository) *GetPointsBalanceUseCase {
	return &GetPointsBalanceUseCase{
		ledgerRepo: repo,
	}
}

// Execute 執行查詢積分餘額
//
// 沒有任何交易的會員餘額為 0，不是錯誤。
func (uc *GetPointsBalanceUseCase) Execute(query GetPointsBalanceQuery) (*GetPointsBalanceResult, error) {
	return uc.ExecuteWithContext(nil, query)
}

// ExecuteWithContext 在事務上下文中執行查詢
//
// 獨立查詢時可傳入 nil（不需要事務）。
func (uc *GetPointsBalanceUseCase) ExecuteWithContext(
	ctx shared.TransactionContext,
	query GetPointsBalanceQuery,
) (*GetPointsBalanceResult, error) {
	ledger, err := loadLedger(ctx, uc.ledgerRepo, query.MemberID)
	if err != nil {
		return nil, err
	}

	return &GetPointsBalanceResult{
		MemberID:         ledger.MemberID().String(),
		Balance:          ledger.Balance().Value(),
		TransactionCount: int(ledger.NextSequence() - 1),
	}, nil
}

func loadLedger(ctx shared.TransactionContext, repo points.LedgerRepository, rawMemberID string) (*points.Ledger, error) {
	memberID, err := points.MemberIDFromString(rawMemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}
	txs, err := repo.FindByMemberID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return points.NewLedger(memberID, txs)
}
