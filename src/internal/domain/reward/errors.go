package reward

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

const (
	ErrCodeRewardNotFound  shared.ErrorCode = "REWARD_NOT_FOUND"
	ErrCodeInvalidRewardID shared.ErrorCode = "REWARD_ID_INVALID"
	ErrCodeInvalidReward   shared.ErrorCode = "REWARD_INVALID"
)

var (
	// ErrRewardNotFound 獎品不存在（目錄參照過期，呼叫者應重新載入目錄）
	ErrRewardNotFound = shared.NewDomainError(ErrCodeRewardNotFound, shared.KindNotFound, "獎品不存在")

	ErrInvalidRewardID = shared.NewDomainError(ErrCodeInvalidRewardID, shared.KindValidation, "無效的獎品 ID")

	ErrInvalidReward = shared.NewDomainError(ErrCodeInvalidReward, shared.KindValidation, "無效的獎品資料")
)
