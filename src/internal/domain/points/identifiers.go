package points

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// TransactionID - 帳本交易 ID
// ===========================

// TransactionMarker 是 TransactionID 的標記類型
type TransactionMarker struct{}

// TransactionID 帳本交易的唯一標識符
type TransactionID = shared.EntityID[TransactionMarker]

// NewTransactionID 生成新的交易 ID（UUID v4）
func NewTransactionID() TransactionID {
	return shared.NewEntityID[TransactionMarker]()
}

// TransactionIDFromString 從字串解析交易 ID
func TransactionIDFromString(s string) (TransactionID, error) {
	return shared.EntityIDFromString[TransactionMarker](s, ErrInvalidTransactionID)
}

// ===========================
// MemberID - 會員 ID
// ===========================

// MemberMarker 是 MemberID 的標記類型
type MemberMarker struct{}

// MemberID 會員的唯一標識符（由外部身分服務提供，已通過驗證）
type MemberID = shared.EntityID[MemberMarker]

// MemberIDFromString 從字串解析會員 ID
//
// 使用場景：
// - 從數據庫讀取交易
// - HTTP 路徑參數
func MemberIDFromString(s string) (MemberID, error) {
	return shared.EntityIDFromString[MemberMarker](s, ErrInvalidMemberID)
}
