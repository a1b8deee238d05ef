package booking

import "github.com/jackyeh168/club_ledger/src/internal/domain/shared"

const (
	ErrCodeDuplicateBooking        shared.ErrorCode = "BOOKING_DUPLICATE"
	ErrCodeBookingNotFound         shared.ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeInvalidBookingID        shared.ErrorCode = "BOOKING_ID_INVALID"
	ErrCodeInvalidMemberID         shared.ErrorCode = "MEMBER_ID_INVALID"
	ErrCodeInvalidClassEventID     shared.ErrorCode = "CLASS_EVENT_ID_INVALID"
	ErrCodeInvalidOccurrence       shared.ErrorCode = "BOOKING_OCCURRENCE_INVALID"
	ErrCodeInvalidStatus           shared.ErrorCode = "BOOKING_STATUS_INVALID"
	ErrCodeInvalidStatusTransition shared.ErrorCode = "BOOKING_STATUS_TRANSITION_INVALID"
)

var (
	// ErrDuplicateBooking 同一 (會員, 活動, 時間) 已有進行中的預約
	//
	// 屬於並行偵測到的衝突，呼叫者可據此顯示「已報名」而非一般錯誤。
	ErrDuplicateBooking = shared.NewDomainError(ErrCodeDuplicateBooking, shared.KindConflict, "已報名此場次")

	ErrBookingNotFound = shared.NewDomainError(ErrCodeBookingNotFound, shared.KindNotFound, "預約不存在")

	ErrInvalidBookingID = shared.NewDomainError(ErrCodeInvalidBookingID, shared.KindValidation, "無效的預約 ID")

	ErrInvalidMemberID = shared.NewDomainError(ErrCodeInvalidMemberID, shared.KindValidation, "無效的會員 ID")

	ErrInvalidClassEventID = shared.NewDomainError(
		ErrCodeInvalidClassEventID, shared.KindValidation, "無效的課程活動 ID",
	)

	ErrInvalidOccurrence = shared.NewDomainError(ErrCodeInvalidOccurrence, shared.KindValidation, "無效的場次時間")

	ErrInvalidStatus = shared.NewDomainError(ErrCodeInvalidStatus, shared.KindInternal, "無效的預約狀態")

	// ErrInvalidStatusTransition 只允許 scheduled → archived
	ErrInvalidStatusTransition = shared.NewDomainError(
		ErrCodeInvalidStatusTransition, shared.KindBusinessRule, "預約狀態無法變更",
	)
)
