package points

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
)

// HistoryView 歷史查詢的視圖
type HistoryView string

const (
	// HistoryViewAll 所有交易
	HistoryViewAll HistoryView = "all"
	// HistoryViewRedemptions 只有兌換（delta < 0，以絕對值呈現）
	HistoryViewRedemptions HistoryView = "redemptions"
)

// GetHistoryQuery 查詢交易歷史
type GetHistoryQuery struct {
	MemberID string
	View     HistoryView // 空字串視為 HistoryViewAll
}

// HistoryEntry 一筆交易
type HistoryEntry struct {
	TransactionID string
	Sequence      int64
	Delta         int
	Source        string
	SourceRef     string
	RewardID      int64
	RewardName    string
	Description   string
	OccurredAt    time.Time
}

// RedemptionEntry 一筆兌換紀錄（數量為正數）
type RedemptionEntry struct {
	TransactionID string
	Amount        int
	RewardID      int64
	RewardName    string
	Description   string
	OccurredAt    time.Time
}

// GetHistoryResult 歷史查詢結果；依 View 只填其中一個欄位
type GetHistoryResult struct {
	MemberID    string
	Entries     []HistoryEntry
	Redemptions []RedemptionEntry
}

// GetHistoryUseCase 查詢交易歷史 Use Case
//
// 依發生時間排序（時間相同時依序號）。
type GetHistoryUseCase struct {
	ledgerRepo points.LedgerRepository
}

// NewGetHistoryUseCase 創建 Use Case 實例
func NewGetHistoryUseCase(repo points.LedgerRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{ledgerRepo: repo}
}

// Execute 執行查詢
func (uc *GetHistoryUseCase) Execute(query GetHistoryQuery) (*GetHistoryResult, error) {
	ledger, err := loadLedger(nil, uc.ledgerRepo, query.MemberID)
	if err != nil {
		return nil, err
	}

	result := &GetHistoryResult{MemberID: ledger.MemberID().String()}

	switch query.View {
	case HistoryViewRedemptions:
		result.Redemptions = []RedemptionEntry{}
		for _, r := range ledger.Redemptions() {
			result.Redemptions = append(result.Redemptions, RedemptionEntry{
				TransactionID: r.TransactionID.String(),
				Amount:        r.Amount.Value(),
				RewardID:      r.RewardID,
				RewardName:    r.RewardName,
				Description:   r.Description,
				OccurredAt:    r.OccurredAt,
			})
		}
	case "", HistoryViewAll:
		result.Entries = []HistoryEntry{}
		for _, tx := range ledger.History() {
			entry := HistoryEntry{
				TransactionID: tx.ID().String(),
				Sequence:      tx.Sequence(),
				Delta:         tx.Delta(),
				Source:        tx.Source().String(),
				SourceRef:     tx.SourceRef(),
				Description:   tx.Description(),
				OccurredAt:    tx.OccurredAt(),
			}
			if reward, ok := tx.Reward(); ok {
				entry.RewardID = reward.ID
				entry.RewardName = reward.Name
			}
			result.Entries = append(result.Entries, entry)
		}
	default:
		return nil, ErrInvalidHistoryView.WithContext("view", string(query.View))
	}

	return result, nil
}
