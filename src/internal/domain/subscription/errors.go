package subscription

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeInvalidStartDate      shared.ErrorCode = "SUBSCRIPTION_START_DATE_INVALID"
	ErrCodeInvalidDate           shared.ErrorCode = "DATE_INVALID"
	ErrCodeInvalidCadence        shared.ErrorCode = "CADENCE_INVALID"
	ErrCodeInvalidPlanCode       shared.ErrorCode = "PLAN_CODE_INVALID"
	ErrCodeInvalidPlan           shared.ErrorCode = "PLAN_INVALID"
	ErrCodePlanNotFound          shared.ErrorCode = "PLAN_NOT_FOUND"
	ErrCodeInvalidSubscriptionID shared.ErrorCode = "SUBSCRIPTION_ID_INVALID"
	ErrCodeInvalidMemberID       shared.ErrorCode = "MEMBER_ID_INVALID"
	ErrCodeSubscriptionNotFound  shared.ErrorCode = "SUBSCRIPTION_NOT_FOUND"
	ErrCodeSubscriptionConflict  shared.ErrorCode = "SUBSCRIPTION_VERSION_CONFLICT"
)

// ===========================
// 預定義錯誤
// ===========================

var (
	// ErrInvalidStartDate 開始日期早於排程日且未標記為補登
	ErrInvalidStartDate = shared.NewDomainError(
		ErrCodeInvalidStartDate, shared.KindValidation, "開始日期不可早於排程日（除非標記為補登）",
	)

	// ErrInvalidDate 無效的日曆日期
	ErrInvalidDate = shared.NewDomainError(ErrCodeInvalidDate, shared.KindValidation, "無效的日期")

	// ErrInvalidCadence 未知的計費週期
	ErrInvalidCadence = shared.NewDomainError(ErrCodeInvalidCadence, shared.KindValidation, "無效的計費週期")

	ErrInvalidPlanCode = shared.NewDomainError(ErrCodeInvalidPlanCode, shared.KindValidation, "無效的方案代碼")

	ErrInvalidPlan = shared.NewDomainError(ErrCodeInvalidPlan, shared.KindValidation, "無效的方案資料")

	// ErrPlanNotFound 方案不存在
	ErrPlanNotFound = shared.NewDomainError(ErrCodePlanNotFound, shared.KindNotFound, "方案不存在")

	ErrInvalidSubscriptionID = shared.NewDomainError(
		ErrCodeInvalidSubscriptionID, shared.KindValidation, "無效的訂閱 ID",
	)

	ErrInvalidMemberID = shared.NewDomainError(ErrCodeInvalidMemberID, shared.KindValidation, "無效的會員 ID")

	ErrSubscriptionNotFound = shared.NewDomainError(
		ErrCodeSubscriptionNotFound, shared.KindNotFound, "訂閱不存在",
	)

	// ErrSubscriptionConflict 訂閱已被其他請求修改（樂觀鎖版本不符）
	ErrSubscriptionConflict = shared.NewDomainError(
		ErrCodeSubscriptionConflict, shared.KindConflict, "訂閱已被修改，請重新載入",
	)
)
