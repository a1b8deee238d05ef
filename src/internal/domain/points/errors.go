package points

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	// 積分數量相關
	ErrCodeNegativePointsAmount shared.ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInvalidPointsAmount  shared.ErrorCode = "POINTS_INVALID"
	ErrCodePointsOverflow       shared.ErrorCode = "POINTS_OVERFLOW"
	ErrCodeInsufficientBalance  shared.ErrorCode = "POINTS_INSUFFICIENT_BALANCE"

	// 轉換率與結算相關
	ErrCodeInvalidConversionRate shared.ErrorCode = "CONVERSION_RATE_INVALID"
	ErrCodeInvalidSettlement     shared.ErrorCode = "SETTLEMENT_INVALID"

	// 交易相關
	ErrCodeInvalidTransactionID  shared.ErrorCode = "TRANSACTION_ID_INVALID"
	ErrCodeInvalidMemberID       shared.ErrorCode = "MEMBER_ID_INVALID"
	ErrCodeInvalidPointsSource   shared.ErrorCode = "POINTS_SOURCE_INVALID"
	ErrCodeInvalidIdempotencyKey shared.ErrorCode = "IDEMPOTENCY_KEY_INVALID"
	ErrCodeIdempotencyKeyReused  shared.ErrorCode = "IDEMPOTENCY_KEY_REUSED"
	ErrCodeConcurrentAppend      shared.ErrorCode = "LEDGER_CONCURRENT_APPEND"
	ErrCodeDuplicateIdempotency  shared.ErrorCode = "LEDGER_DUPLICATE_IDEMPOTENCY_KEY"
	ErrCodeCorruptedLedger       shared.ErrorCode = "LEDGER_CORRUPTED"
)

// ===========================
// 預定義錯誤
// ===========================

// 積分數量相關錯誤
var (
	ErrNegativePointsAmount = shared.NewDomainError(
		ErrCodeNegativePointsAmount, shared.KindValidation, "積分數量不能為負數",
	)

	// ErrInvalidPointsAmount 賺取／兌換的積分必須大於零
	ErrInvalidPointsAmount = shared.NewDomainError(
		ErrCodeInvalidPointsAmount, shared.KindValidation, "積分數量必須大於零",
	)

	ErrPointsOverflow = shared.NewDomainError(
		ErrCodePointsOverflow, shared.KindValidation, "積分數量超過上限",
	)

	// ErrInsufficientBalance 餘額不足（業務規則拒絕，不會附加任何交易）
	ErrInsufficientBalance = shared.NewDomainError(
		ErrCodeInsufficientBalance, shared.KindBusinessRule, "積分餘額不足",
	)
)

// 轉換率與結算相關錯誤
var (
	ErrInvalidConversionRate = shared.NewDomainError(
		ErrCodeInvalidConversionRate, shared.KindValidation, "轉換率必須在 1-1000 之間",
	)

	ErrInvalidSettlement = shared.NewDomainError(
		ErrCodeInvalidSettlement, shared.KindValidation, "無效的付款結算確認",
	)
)

// 交易相關錯誤
var (
	ErrInvalidTransactionID = shared.NewDomainError(
		ErrCodeInvalidTransactionID, shared.KindValidation, "無效的交易 ID",
	)

	ErrInvalidMemberID = shared.NewDomainError(
		ErrCodeInvalidMemberID, shared.KindValidation, "無效的會員 ID",
	)

	ErrInvalidPointsSource = shared.NewDomainError(
		ErrCodeInvalidPointsSource, shared.KindValidation, "無效的積分來源",
	)

	ErrInvalidIdempotencyKey = shared.NewDomainError(
		ErrCodeInvalidIdempotencyKey, shared.KindValidation, "無效的冪等鍵",
	)

	// ErrIdempotencyKeyReused 冪等鍵已用於內容不同的請求（不重送、不追加）
	ErrIdempotencyKeyReused = shared.NewDomainError(
		ErrCodeIdempotencyKeyReused, shared.KindConflict, "冪等鍵已用於其他請求",
	)

	// ErrConcurrentAppend 其他寫入者已佔用同一序號（Use Case 重新載入後重試）
	ErrConcurrentAppend = shared.NewDomainError(
		ErrCodeConcurrentAppend, shared.KindConflict, "帳本已被並行寫入",
	)

	// ErrDuplicateIdempotencyKey 同一會員的冪等鍵已被使用
	ErrDuplicateIdempotencyKey = shared.NewDomainError(
		ErrCodeDuplicateIdempotency, shared.KindConflict, "冪等鍵已被使用",
	)

	// ErrCorruptedLedger 從儲存載入的交易違反帳本不變量
	ErrCorruptedLedger = shared.NewDomainError(
		ErrCodeCorruptedLedger, shared.KindInternal, "帳本資料不一致",
	)
)
