package points

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// Ledger Aggregate Root
// ===========================

// Ledger 會員積分帳本聚合根
//
// 聚合邊界：
// - 單一會員的全部交易（依 sequence 排序）
//
// 不變量（Invariants）：
// 1. 餘額 = 所有交易 delta 的總和，永遠由交易推導，不另外保存
// 2. 依 sequence 重播時，任何時點的餘額都不可為負
// 3. 兌換前檢查餘額，失敗時不產生任何交易
// 4. 同一冪等鍵在同一會員內只對應一筆交易
//
// 設計原則：
// - 帳本只在一個交易（TransactionManager）內存活：載入 → 決策 → 追加
// - 聚合只產生新交易，持久化由 Repository.Append 負責
//
// 使用範例：
//
//	ledger, err := NewLedger(memberID, transactions)
//	tx, err := ledger.Redeem(RedeemCommand{Amount: amount, Reward: &ref}, now)
//	err = repo.Append(ctx, tx)
type Ledger struct {
	memberID     MemberID
	transactions []*LedgerTransaction
	balance      int
	byKey        map[string]*LedgerTransaction

	events []shared.DomainEvent
}

// NewLedger 由既有交易建立帳本，並驗證帳本不變量
//
// transactions 順序不限，會依 sequence 排序。
func NewLedger(memberID MemberID, transactions []*LedgerTransaction) (*Ledger, error) {
	if memberID.IsEmpty() {
		return nil, ErrInvalidMemberID.WithContext("reason", "member id is required")
	}

	sorted := make([]*LedgerTransaction, len(transactions))
	copy(sorted, transactions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].sequence < sorted[j].sequence
	})

	l := &Ledger{
		memberID:     memberID,
		transactions: sorted,
		byKey:        make(map[string]*LedgerTransaction),
	}

	for i, tx := range sorted {
		if !tx.memberID.Equals(memberID) {
			return nil, ErrCorruptedLedger.WithContext(
				"member_id", memberID.String(),
				"foreign_transaction", tx.id.String(),
			)
		}
		if tx.sequence != int64(i+1) {
			return nil, ErrCorruptedLedger.WithContext(
				"member_id", memberID.String(),
				"expected_sequence", i+1,
				"actual_sequence", tx.sequence,
			)
		}
		l.balance += tx.delta
		if l.balance < 0 {
			return nil, ErrCorruptedLedger.WithContext(
				"member_id", memberID.String(),
				"sequence", tx.sequence,
				"balance", l.balance,
			)
		}
		if tx.idempotencyKey != "" {
			l.byKey[tx.idempotencyKey] = tx
		}
	}

	return l, nil
}

// ===========================
// 寫入命令
// ===========================

// EarnCommand 賺取積分
type EarnCommand struct {
	Amount         PointsAmount
	Source         PointsSource
	SourceRef      string
	Description    string
	IdempotencyKey string
}

// RedeemCommand 兌換（扣除）積分
type RedeemCommand struct {
	Amount         PointsAmount
	Reward         *RewardRef
	Description    string
	IdempotencyKey string
}

// Earn 追加一筆正數交易
//
// 錯誤：
// - ErrInvalidPointsAmount：數量為零
// - ErrInvalidPointsSource：來源不是入帳來源
// - ErrPointsOverflow：餘額超過上限
func (l *Ledger) Earn(cmd EarnCommand, now time.Time) (*LedgerTransaction, error) {
	if cmd.Amount.IsZero() {
		return nil, ErrInvalidPointsAmount.WithContext("value", 0)
	}
	if !cmd.Source.IsEarnSource() {
		return nil, ErrInvalidPointsSource.WithContext("source", string(cmd.Source))
	}
	newBalance, err := newPointsAmountUnchecked(l.balance).Add(cmd.Amount)
	if err != nil {
		return nil, err
	}

	tx := l.append(cmd.Amount.Value(), cmd.Source, cmd.SourceRef, nil, cmd.Description, cmd.IdempotencyKey, now)
	l.events = append(l.events, NewPointsEarnedEvent(tx, newBalance))
	return tx, nil
}

// Redeem 檢查餘額後追加一筆負數交易
//
// 錯誤：
// - ErrInvalidPointsAmount：數量為零
// - ErrInsufficientBalance：數量大於目前餘額（不追加任何交易）
func (l *Ledger) Redeem(cmd RedeemCommand, now time.Time) (*LedgerTransaction, error) {
	if cmd.Amount.IsZero() {
		return nil, ErrInvalidPointsAmount.WithContext("value", 0)
	}
	newBalance, err := newPointsAmountUnchecked(l.balance).Subtract(cmd.Amount)
	if err != nil {
		return nil, ErrInsufficientBalance.WithContext(
			"member_id", l.memberID.String(),
			"balance", l.balance,
			"requested", cmd.Amount.Value(),
		)
	}

	var reward *RewardRef
	if cmd.Reward != nil {
		ref := *cmd.Reward
		reward = &ref
	}
	sourceRef := ""
	if reward != nil {
		sourceRef = rewardSourceRef(reward.ID)
	}

	tx := l.append(-cmd.Amount.Value(), SourceRedemption, sourceRef, reward, cmd.Description, cmd.IdempotencyKey, now)
	l.events = append(l.events, NewPointsRedeemedEvent(tx, newBalance))
	return tx, nil
}

func (l *Ledger) append(
	delta int,
	source PointsSource,
	sourceRef string,
	reward *RewardRef,
	description string,
	idempotencyKey string,
	now time.Time,
) *LedgerTransaction {
	tx := &LedgerTransaction{
		id:             NewTransactionID(),
		memberID:       l.memberID,
		sequence:       l.NextSequence(),
		delta:          delta,
		occurredAt:     now,
		source:         source,
		sourceRef:      sourceRef,
		reward:         reward,
		description:    strings.TrimSpace(description),
		idempotencyKey: idempotencyKey,
	}
	l.transactions = append(l.transactions, tx)
	l.balance += delta
	if idempotencyKey != "" {
		l.byKey[idempotencyKey] = tx
	}
	return tx
}

func rewardSourceRef(rewardID int64) string {
	return "reward:" + strconv.FormatInt(rewardID, 10)
}

// ===========================
// 查詢方法
// ===========================

// MemberID 帳本所屬會員
func (l *Ledger) MemberID() MemberID {
	return l.memberID
}

// Balance 目前餘額（交易 delta 總和）
func (l *Ledger) Balance() PointsAmount {
	return newPointsAmountUnchecked(l.balance)
}

// NextSequence 下一筆交易的序號
func (l *Ledger) NextSequence() int64 {
	return int64(len(l.transactions)) + 1
}

// TransactionByIdempotencyKey 依冪等鍵查找已存在的交易
func (l *Ledger) TransactionByIdempotencyKey(key string) (*LedgerTransaction, bool) {
	if key == "" {
		return nil, false
	}
	tx, ok := l.byKey[key]
	return tx, ok
}

// ReplayExpectation 重送時原交易必須與本次請求相同的部分
type ReplayExpectation struct {
	Delta    int
	Source   PointsSource
	RewardID int64 // 0 表示未連結獎品
}

// Replay 依冪等鍵取回原交易
//
// 回傳：
// - (nil, false, nil)：鍵未使用過，呼叫者應正常寫入
// - (tx, true, nil)：同一請求的重送
// - ErrIdempotencyKeyReused：鍵已用於內容不同的交易
func (l *Ledger) Replay(key string, expect ReplayExpectation) (*LedgerTransaction, bool, error) {
	tx, ok := l.TransactionByIdempotencyKey(key)
	if !ok {
		return nil, false, nil
	}

	var rewardID int64
	if ref, linked := tx.Reward(); linked {
		rewardID = ref.ID
	}
	if tx.Delta() != expect.Delta || tx.Source() != expect.Source || rewardID != expect.RewardID {
		return nil, false, ErrIdempotencyKeyReused.WithContext(
			"member_id", l.memberID.String(),
			"idempotency_key", key,
			"transaction_id", tx.ID().String(),
		)
	}
	return tx, true, nil
}

// History 依發生時間排序的交易（時間相同時依序號）
func (l *Ledger) History() []*LedgerTransaction {
	history := make([]*LedgerTransaction, len(l.transactions))
	copy(history, l.transactions)
	sort.SliceStable(history, func(i, j int) bool {
		if !history[i].occurredAt.Equal(history[j].occurredAt) {
			return history[i].occurredAt.Before(history[j].occurredAt)
		}
		return history[i].sequence < history[j].sequence
	})
	return history
}

// Redemptions 兌換紀錄：History 中 delta < 0 的交易，以絕對值呈現，保留原始順序
func (l *Ledger) Redemptions() []RedemptionEntry {
	var entries []RedemptionEntry
	for _, tx := range l.History() {
		if !tx.IsRedemption() {
			continue
		}
		entry := RedemptionEntry{
			TransactionID: tx.id,
			Amount:        tx.Amount(),
			Description:   tx.description,
			OccurredAt:    tx.occurredAt,
		}
		if reward, ok := tx.Reward(); ok {
			entry.RewardID = reward.ID
			entry.RewardName = reward.Name
		}
		entries = append(entries, entry)
	}
	return entries
}

// PullEvents 取出並清空尚未發布的領域事件
func (l *Ledger) PullEvents() []shared.DomainEvent {
	events := l.events
	l.events = nil
	return events
}
