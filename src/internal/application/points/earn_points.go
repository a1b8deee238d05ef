package points

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/application/common"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// EarnPoints Use Case
// ===========================

// EarnPointsCommand 賺取積分的命令
//
// 輸入：
// - MemberID: 會員 ID（UUID 字串，已由外部驗證身分）
// - Amount: 積分數量（> 0）
// - Source: promotion / manual / settlement（空字串視為 manual）
// - IdempotencyKey: 選填，同一會員重送相同鍵時回傳原交易；鍵只在入帳操作內有效
type EarnPointsCommand struct {
	MemberID       string
	Amount         int
	Source         string
	SourceRef      string
	Description    string
	IdempotencyKey string
}

// LedgerWriteResult 帳本寫入的結果
type LedgerWriteResult struct {
	TransactionID string
	MemberID      string
	Sequence      int64
	Delta         int
	Balance       int
	OccurredAt    time.Time
	Replayed      bool // true 表示冪等重送，未追加新交易
}

func newLedgerWriteResult(outcome *appendOutcome) *LedgerWriteResult {
	return &LedgerWriteResult{
		TransactionID: outcome.tx.ID().String(),
		MemberID:      outcome.tx.MemberID().String(),
		Sequence:      outcome.tx.Sequence(),
		Delta:         outcome.tx.Delta(),
		Balance:       outcome.balance.Value(),
		OccurredAt:    outcome.tx.OccurredAt(),
		Replayed:      outcome.replayed,
	}
}

// EarnPointsUseCase 賺取積分 Use Case
type EarnPointsUseCase struct {
	writer    *LedgerWriter
	publisher shared.EventPublisher
	clock     shared.Clock
	logger    *slog.Logger
}

// NewEarnPointsUseCase 創建 Use Case 實例
func NewEarnPointsUseCase(
	writer *LedgerWriter,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *EarnPointsUseCase {
	return &EarnPointsUseCase{
		writer:    writer,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute 執行賺取積分
//
// 錯誤處理：
// - ErrInvalidMemberID / ErrInvalidPointsAmount / ErrInvalidPointsSource: 輸入無效
// - ErrPointsOverflow: 餘額超過上限
// - ErrIdempotencyKeyReused: 冪等鍵已用於數量或來源不同的入帳
// - shared.ErrUnavailable: 儲存層不可用
func (uc *EarnPointsUseCase) Execute(cmd EarnPointsCommand) (*LedgerWriteResult, error) {
	memberID, err := points.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}
	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}
	source := points.SourceManual
	if cmd.Source != "" {
		if source, err = points.ParsePointsSource(cmd.Source); err != nil {
			return nil, err
		}
	}
	key, err := points.NormalizeIdempotencyKey(cmd.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	key = points.ScopedIdempotencyKey(points.ScopeEarn, key)
	expect := points.ReplayExpectation{Delta: amount.Value(), Source: source}

	now := uc.clock.Now()
	outcome, err := uc.writer.write(memberID, key, expect, func(ledger *points.Ledger) (*points.LedgerTransaction, error) {
		return ledger.Earn(points.EarnCommand{
			Amount:         amount,
			Source:         source,
			SourceRef:      cmd.SourceRef,
			Description:    cmd.Description,
			IdempotencyKey: key,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, "earn_points", outcome.events)
	return newLedgerWriteResult(outcome), nil
}
