package subscription

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

// ===========================
// 實體 ID 類型定義
// ===========================

// SubscriptionMarker 是 SubscriptionID 的標記類型
type SubscriptionMarker struct{}

// SubscriptionID 訂閱的唯一標識符
type SubscriptionID = shared.EntityID[SubscriptionMarker]

// NewSubscriptionID 生成新的訂閱 ID（UUID v4）
func NewSubscriptionID() SubscriptionID {
	return shared.NewEntityID[SubscriptionMarker]()
}

// SubscriptionIDFromString 從字串解析訂閱 ID
func SubscriptionIDFromString(s string) (SubscriptionID, error) {
	return shared.EntityIDFromString[SubscriptionMarker](s, ErrInvalidSubscriptionID)
}

// MemberMarker 是 MemberID 的標記類型
type MemberMarker struct{}

// MemberID 會員 ID（由外部身分服務提供）
type MemberID = shared.EntityID[MemberMarker]

// MemberIDFromString 從字串解析會員 ID
func MemberIDFromString(s string) (MemberID, error) {
	return shared.EntityIDFromString[MemberMarker](s, ErrInvalidMemberID)
}
