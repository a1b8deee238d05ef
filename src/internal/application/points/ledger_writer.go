package points

import (
	"errors"
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// maxAppendAttempts 序號衝突時的最大嘗試次數（含第一次）
const maxAppendAttempts = 3

// LedgerLockKey 會員帳本的鎖鍵
func LedgerLockKey(memberID points.MemberID) string {
	return "ledger:" + memberID.String()
}

// LedgerWriter 帳本寫入協調者
//
// 所有寫入（賺取、兌換、結算入帳）都經過這裡：
// 1. 取得會員鍵鎖（同一會員序列化，不同會員並行）
// 2. 在事務中載入帳本 → 檢查冪等鍵 → 聚合決策 → 條件追加
// 3. 序號衝突（其他行程搶先寫入）時重新載入並重試，最多 maxAppendAttempts 次
//
// 檢查餘額與追加交易在同一個事務與同一把鎖內完成。
type LedgerWriter struct {
	repo      points.LedgerRepository
	txManager shared.TransactionManager
	locker    shared.KeyedLocker
}

// NewLedgerWriter 創建帳本寫入協調者
func NewLedgerWriter(
	repo points.LedgerRepository,
	txManager shared.TransactionManager,
	locker shared.KeyedLocker,
) *LedgerWriter {
	return &LedgerWriter{
		repo:      repo,
		txManager: txManager,
		locker:    locker,
	}
}

// appendOutcome 一次寫入的結果
type appendOutcome struct {
	tx       *points.LedgerTransaction
	balance  points.PointsAmount
	replayed bool
	events   []shared.DomainEvent
}

// decideFunc 在載入的帳本上產生新交易（聚合方法）
type decideFunc func(ledger *points.Ledger) (*points.LedgerTransaction, error)

// write 以鎖 + 事務 + 有限重試執行一次帳本寫入
//
// idempotencyKey 為已加上操作前綴的鍵。鍵已存在且原交易符合 expect 時直接回傳原交易；
// 不符合時回傳 ErrIdempotencyKeyReused。兩種情況都不追加任何交易。
func (w *LedgerWriter) write(
	memberID points.MemberID,
	idempotencyKey string,
	expect points.ReplayExpectation,
	decide decideFunc,
) (*appendOutcome, error) {
	unlock := w.locker.Lock(LedgerLockKey(memberID))
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= maxAppendAttempts; attempt++ {
		var outcome *appendOutcome
		err := w.txManager.InTransaction(func(ctx shared.TransactionContext) error {
			txs, err := w.repo.FindByMemberID(ctx, memberID)
			if err != nil {
				return fmt.Errorf("failed to load ledger: %w", err)
			}
			ledger, err := points.NewLedger(memberID, txs)
			if err != nil {
				return err
			}

			existing, replayed, err := ledger.Replay(idempotencyKey, expect)
			if err != nil {
				return err
			}
			if replayed {
				outcome = &appendOutcome{tx: existing, balance: ledger.Balance(), replayed: true}
				return nil
			}

			tx, err := decide(ledger)
			if err != nil {
				return err
			}
			if err := w.repo.Append(ctx, tx); err != nil {
				return err
			}

			outcome = &appendOutcome{tx: tx, balance: ledger.Balance(), events: ledger.PullEvents()}
			return nil
		})
		if err == nil {
			return outcome, nil
		}
		if !isRetryableAppendError(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ledger append failed after %d attempts: %w", maxAppendAttempts, lastErr)
}

// isRetryableAppendError 其他寫入者搶先佔用序號或冪等鍵
//
// 重新載入後，前者取得新序號，後者會在冪等檢查時回傳原交易或 ErrIdempotencyKeyReused。
func isRetryableAppendError(err error) bool {
	return errors.Is(err, points.ErrConcurrentAppend) || errors.Is(err, points.ErrDuplicateIdempotencyKey)
}
