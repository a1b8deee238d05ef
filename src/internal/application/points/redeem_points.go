package points

import (
	"fmt"
	"log/slog"

	"github.com/jackyeh168/club_ledger/src/internal/application/common"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// RedeemPoints Use Case
// ===========================

// RedeemPointsCommand 兌換積分的命令
//
// RewardID 為 0 表示未連結獎品（例如管理員扣點）。
type RedeemPointsCommand struct {
	MemberID       string
	Amount         int
	RewardID       int64
	RewardName     string
	Description    string
	IdempotencyKey string
}

// RedeemPointsUseCase 兌換積分 Use Case
//
// 餘額檢查與追加交易在同一把會員鎖與同一個事務內完成：
// 兩個並行兌換不可能同時通過檢查而讓餘額變負。
type RedeemPointsUseCase struct {
	writer    *LedgerWriter
	publisher shared.EventPublisher
	clock     shared.Clock
	logger    *slog.Logger
}

// NewRedeemPointsUseCase 創建 Use Case 實例
func NewRedeemPointsUseCase(
	writer *LedgerWriter,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *RedeemPointsUseCase {
	return &RedeemPointsUseCase{
		writer:    writer,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute 執行兌換
//
// 錯誤處理：
// - ErrInsufficientBalance: 餘額不足（不追加任何交易）
// - ErrInvalidPointsAmount: 數量 <= 0
// - ErrIdempotencyKeyReused: 冪等鍵已用於數量或獎品不同的兌換
// - shared.ErrUnavailable: 儲存層不可用（事務回滾，不留下部分狀態）
func (uc *RedeemPointsUseCase) Execute(cmd RedeemPointsCommand) (*LedgerWriteResult, error) {
	memberID, err := points.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}
	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}
	key, err := points.NormalizeIdempotencyKey(cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	var reward *points.RewardRef
	if cmd.RewardID != 0 {
		reward = &points.RewardRef{ID: cmd.RewardID, Name: cmd.RewardName}
	}

	key = points.ScopedIdempotencyKey(points.ScopeRedeem, key)
	expect := points.ReplayExpectation{Delta: -amount.Value(), Source: points.SourceRedemption, RewardID: cmd.RewardID}

	now := uc.clock.Now()
	outcome, err := uc.writer.write(memberID, key, expect, func(ledger *points.Ledger) (*points.LedgerTransaction, error) {
		return ledger.Redeem(points.RedeemCommand{
			Amount:         amount,
			Reward:         reward,
			Description:    cmd.Description,
			IdempotencyKey: key,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, "redeem_points", outcome.events)
	return newLedgerWriteResult(outcome), nil
}
