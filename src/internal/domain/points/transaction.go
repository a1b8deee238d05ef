package points

import (
	"time"
)

// ===========================
// LedgerTransaction 帳本交易（不可變）
// ===========================

// LedgerTransaction 一筆帳本交易
//
// 不變量：
// 1. delta != 0（正數為賺取，負數為兌換）
// 2. sequence 在同一會員內從 1 起連續遞增
// 3. 只有 delta < 0 的交易可以連結獎品
// 4. 建立後不可修改，帳本只能追加
type LedgerTransaction struct {
	id             TransactionID
	memberID       MemberID
	sequence       int64
	delta          int
	occurredAt     time.Time
	source         PointsSource
	sourceRef      string
	reward         *RewardRef
	description    string
	idempotencyKey string
}

// ReconstructLedgerTransaction 重建交易（用於從資料庫載入）
func ReconstructLedgerTransaction(
	id TransactionID,
	memberID MemberID,
	sequence int64,
	delta int,
	occurredAt time.Time,
	source PointsSource,
	sourceRef string,
	reward *RewardRef,
	description string,
	idempotencyKey string,
) (*LedgerTransaction, error) {
	if delta == 0 || sequence < 1 {
		return nil, ErrCorruptedLedger.WithContext(
			"transaction_id", id.String(),
			"sequence", sequence,
			"delta", delta,
		)
	}
	if reward != nil && delta > 0 {
		return nil, ErrCorruptedLedger.WithContext(
			"transaction_id", id.String(),
			"reason", "reward linked to an earn transaction",
		)
	}

	return &LedgerTransaction{
		id:             id,
		memberID:       memberID,
		sequence:       sequence,
		delta:          delta,
		occurredAt:     occurredAt,
		source:         source,
		sourceRef:      sourceRef,
		reward:         reward,
		description:    description,
		idempotencyKey: idempotencyKey,
	}, nil
}

func (t *LedgerTransaction) ID() TransactionID { return t.id }
func (t *LedgerTransaction) MemberID() MemberID { return t.memberID }
func (t *LedgerTransaction) Sequence() int64 { return t.sequence }
func (t *LedgerTransaction) Delta() int { return t.delta }
func (t *LedgerTransaction) OccurredAt() time.Time { return t.occurredAt }
func (t *LedgerTransaction) Source() PointsSource { return t.source }
func (t *LedgerTransaction) SourceRef() string { return t.sourceRef }
func (t *LedgerTransaction) Description() string { return t.description }
func (t *LedgerTransaction) IdempotencyKey() string { return t.idempotencyKey }

// Reward 連結的獎品；非兌換交易時 ok 為 false
func (t *LedgerTransaction) Reward() (RewardRef, bool) {
	if t.reward == nil {
		return RewardRef{}, false
	}
	return *t.reward, true
}

// IsRedemption 是否為扣點交易
func (t *LedgerTransaction) IsRedemption() bool {
	return t.delta < 0
}

// Amount 交易的絕對數量
func (t *LedgerTransaction) Amount() PointsAmount {
	if t.delta < 0 {
		return newPointsAmountUnchecked(-t.delta)
	}
	return newPointsAmountUnchecked(t.delta)
}

// RedemptionEntry 兌換紀錄檢視（絕對值 + 獎品名稱）
type RedemptionEntry struct {
	TransactionID TransactionID
	Amount        PointsAmount
	RewardID      int64
	RewardName    string
	Description   string
	OccurredAt    time.Time
}
