package points

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
)

// ===========================
// GORM Models
// ===========================

// LedgerTransactionGORM 帳本交易資料表模型
//
// 資料庫約束：
// - transaction_id: 主鍵（UUID）
// - (member_id, sequence): 唯一索引，追加時的條件寫入；並行寫入者只有一個成功
// - (member_id, idempotency_key): 唯一索引，NULL 不參與比較；鍵含操作前綴（earn: / redeem: / settlement:）
// - delta != 0
//
// 沒有 updated_at / deleted_at：交易寫入後不可修改或刪除。
type LedgerTransactionGORM struct {
	TransactionID  string    `gorm:"column:transaction_id;type:varchar(36);primaryKey"`
	MemberID       string    `gorm:"column:member_id;type:varchar(36);not null;uniqueIndex:idx_ledger_member_sequence,priority:1;uniqueIndex:idx_ledger_member_idempotency,priority:1"`
	Sequence       int64     `gorm:"column:sequence;not null;uniqueIndex:idx_ledger_member_sequence,priority:2"`
	Delta          int       `gorm:"column:delta;not null;check:chk_ledger_delta_nonzero,delta <> 0"`
	OccurredAt     time.Time `gorm:"column:occurred_at;not null;index"`
	Source         string    `gorm:"column:source;type:varchar(20);not null"`
	SourceRef      string    `gorm:"column:source_ref;type:varchar(128);not null;default:''"`
	RewardID       *int64    `gorm:"column:reward_id"`
	RewardName     *string   `gorm:"column:reward_name;type:varchar(255)"`
	Description    string    `gorm:"column:description;type:text;not null;default:''"`
	IdempotencyKey *string   `gorm:"column:idempotency_key;type:varchar(160);uniqueIndex:idx_ledger_member_idempotency,priority:2"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (LedgerTransactionGORM) TableName() string {
	return "ledger_transactions"
}

// Models 本套件需要遷移的資料表
func Models() []any {
	return []any{&LedgerTransactionGORM{}}
}

// ===========================
// Mapper Functions
// ===========================

// toDomain 將 GORM 模型轉換為 Domain 模型
func (g *LedgerTransactionGORM) toDomain() (*points.LedgerTransaction, error) {
	transactionID, err := points.TransactionIDFromString(g.TransactionID)
	if err != nil {
		return nil, err
	}

	memberID, err := points.MemberIDFromString(g.MemberID)
	if err != nil {
		return nil, err
	}

	source, err := points.ParsePointsSource(g.Source)
	if err != nil {
		return nil, err
	}

	var reward *points.RewardRef
	if g.RewardID != nil {
		reward = &points.RewardRef{ID: *g.RewardID}
		if g.RewardName != nil {
			reward.Name = *g.RewardName
		}
	}

	key := ""
	if g.IdempotencyKey != nil {
		key = *g.IdempotencyKey
	}

	return points.ReconstructLedgerTransaction(
		transactionID,
		memberID,
		g.Sequence,
		g.Delta,
		g.OccurredAt.UTC(),
		source,
		g.SourceRef,
		reward,
		g.Description,
		key,
	)
}

// toGORM 將 Domain 模型轉換為 GORM 模型
func toGORM(tx *points.LedgerTransaction, now time.Time) *LedgerTransactionGORM {
	model := &LedgerTransactionGORM{
		TransactionID: tx.ID().String(),
		MemberID:      tx.MemberID().String(),
		Sequence:      tx.Sequence(),
		Delta:         tx.Delta(),
		OccurredAt:    tx.OccurredAt().UTC(),
		Source:        tx.Source().String(),
		SourceRef:     tx.SourceRef(),
		Description:   tx.Description(),
		CreatedAt:     now,
	}

	if reward, ok := tx.Reward(); ok {
		id := reward.ID
		name := reward.Name
		model.RewardID = &id
		model.RewardName = &name
	}
	if key := tx.IdempotencyKey(); key != "" {
		model.IdempotencyKey = &key
	}

	return model
}
