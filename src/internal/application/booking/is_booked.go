package booking

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
)

// IsBookedQuery 查詢會員是否已預約某活動
type IsBookedQuery struct {
	MemberID string
	EventID  int64
}

// IsBookedUseCase 唯讀投影：會員對該活動是否有任何 scheduled 預約
type IsBookedUseCase struct {
	bookingRepo booking.BookingRepository
}

// NewIsBookedUseCase 創建 Use Case 實例
func NewIsBookedUseCase(bookingRepo booking.BookingRepository) *IsBookedUseCase {
	return &IsBookedUseCase{bookingRepo: bookingRepo}
}

// Execute 執行查詢
func (uc *IsBookedUseCase) Execute(query IsBookedQuery) (bool, error) {
	memberID, err := booking.MemberIDFromString(query.MemberID)
	if err != nil {
		return false, fmt.Errorf("failed to parse member ID: %w", err)
	}
	eventID, err := booking.NewClassEventID(query.EventID)
	if err != nil {
		return false, err
	}
	return uc.bookingRepo.ExistsActiveForEvent(nil, memberID, eventID)
}
