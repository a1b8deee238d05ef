package booking

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// BookingRepository 預約倉儲介面
//
// Save 是條件寫入：儲存層對 scheduled 狀態的 (member_id, event_id, occurs_at)
// 持有部分唯一索引，並行的重複預約只有一筆成功，其餘回傳 ErrDuplicateBooking。
type BookingRepository interface {
	// Save 保存新預約
	// 錯誤：ErrDuplicateBooking
	Save(ctx shared.TransactionContext, b *Booking) error

	// Update 更新預約狀態
	// 錯誤：ErrBookingNotFound
	Update(ctx shared.TransactionContext, b *Booking) error

	// FindByID 依 ID 查找預約
	// 錯誤：ErrBookingNotFound
	FindByID(ctx shared.TransactionContext, id BookingID) (*Booking, error)

	// ExistsActive 該場次是否已有 scheduled 預約
	ExistsActive(ctx shared.TransactionContext, memberID MemberID, eventID ClassEventID, occursAt time.Time) (bool, error)

	// ExistsActiveForEvent 會員在該活動的任一場次是否有 scheduled 預約
	ExistsActiveForEvent(ctx shared.TransactionContext, memberID MemberID, eventID ClassEventID) (bool, error)
}
