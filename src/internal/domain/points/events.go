package points

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

const (
	EventTypePointsEarned   = "points.earned"
	EventTypePointsRedeemed = "points.redeemed"
)

// ===========================
// PointsEarned 領域事件
// ===========================

// PointsEarnedEvent 積分已獲得事件
type PointsEarnedEvent struct {
	shared.BaseEvent
	transactionID TransactionID
	memberID      MemberID
	amount        PointsAmount
	source        PointsSource
	sourceRef     string
	balance       PointsAmount
}

// NewPointsEarnedEvent 由新追加的交易建立事件
func NewPointsEarnedEvent(tx *LedgerTransaction, balance PointsAmount) *PointsEarnedEvent {
	return &PointsEarnedEvent{
		BaseEvent:     shared.NewBaseEvent(EventTypePointsEarned, tx.memberID.String(), tx.occurredAt),
		transactionID: tx.id,
		memberID:      tx.memberID,
		amount:        tx.Amount(),
		source:        tx.source,
		sourceRef:     tx.sourceRef,
		balance:       balance,
	}
}

// TransactionID 交易 ID
func (e *PointsEarnedEvent) TransactionID() TransactionID { return e.transactionID }

// MemberID 獲取會員 ID
func (e *PointsEarnedEvent) MemberID() MemberID { return e.memberID }

// Amount 獲取積分數量
func (e *PointsEarnedEvent) Amount() PointsAmount { return e.amount }

// Source 獲取積分來源
func (e *PointsEarnedEvent) Source() PointsSource { return e.source }

// SourceRef 獲取來源參照
func (e *PointsEarnedEvent) SourceRef() string { return e.sourceRef }

// Balance 入帳後餘額
func (e *PointsEarnedEvent) Balance() PointsAmount { return e.balance }

// ===========================
// PointsRedeemed 領域事件
// ===========================

// PointsRedeemedEvent 積分已兌換事件
type PointsRedeemedEvent struct {
	shared.BaseEvent
	transactionID TransactionID
	memberID      MemberID
	amount        PointsAmount
	reward        *RewardRef
	balance       PointsAmount
}

// NewPointsRedeemedEvent 由新追加的交易建立事件
func NewPointsRedeemedEvent(tx *LedgerTransaction, balance PointsAmount) *PointsRedeemedEvent {
	return &PointsRedeemedEvent{
		BaseEvent:     shared.NewBaseEvent(EventTypePointsRedeemed, tx.memberID.String(), tx.occurredAt),
		transactionID: tx.id,
		memberID:      tx.memberID,
		amount:        tx.Amount(),
		reward:        tx.reward,
		balance:       balance,
	}
}

// TransactionID 交易 ID
func (e *PointsRedeemedEvent) TransactionID() TransactionID { return e.transactionID }

// MemberID 獲取會員 ID
func (e *PointsRedeemedEvent) MemberID() MemberID { return e.memberID }

// Amount 扣除數量（絕對值）
func (e *PointsRedeemedEvent) Amount() PointsAmount { return e.amount }

// Reward 兌換的獎品（可能為空）
func (e *PointsRedeemedEvent) Reward() (RewardRef, bool) {
	if e.reward == nil {
		return RewardRef{}, false
	}
	return *e.reward, true
}

// Balance 扣點後餘額
func (e *PointsRedeemedEvent) Balance() PointsAmount { return e.balance }
