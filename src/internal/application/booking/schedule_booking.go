package booking

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/application/common"
	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ===========================
// ScheduleBooking Use Case
// ===========================

// ScheduleBookingCommand 預約場次的命令
type ScheduleBookingCommand struct {
	MemberID string
	EventID  int64
	OccursAt time.Time
}

// BookingResult 預約結果
type BookingResult struct {
	BookingID string
	MemberID  string
	EventID   int64
	OccursAt  time.Time
	Status    string
}

func newBookingResult(b *booking.Booking) *BookingResult {
	return &BookingResult{
		BookingID: b.ID().String(),
		MemberID:  b.MemberID().String(),
		EventID:   b.EventID().Int64(),
		OccursAt:  b.OccursAt(),
		Status:    string(b.Status()),
	}
}

// ScheduleBookingUseCase 預約場次 Use Case
//
// 重複保護分兩層：
// 1. 場次鍵鎖：同一 (會員, 活動, 場次時間) 的請求在行程內序列化
// 2. 儲存層的部分唯一索引：跨行程時第二個寫入者得到 ErrDuplicateBooking
//
// 事務內的存在檢查只用來提早回報衝突，最終以條件寫入為準。
type ScheduleBookingUseCase struct {
	bookingRepo booking.BookingRepository
	txManager   shared.TransactionManager
	locker      shared.KeyedLocker
	publisher   shared.EventPublisher
	clock       shared.Clock
	logger      *slog.Logger
}

// NewScheduleBookingUseCase 創建 Use Case 實例
func NewScheduleBookingUseCase(
	bookingRepo booking.BookingRepository,
	txManager shared.TransactionManager,
	locker shared.KeyedLocker,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *ScheduleBookingUseCase {
	return &ScheduleBookingUseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		locker:      locker,
		publisher:   publisher,
		clock:       clock,
		logger:      logger,
	}
}

// Execute 執行預約
//
// 錯誤處理：
// - ErrDuplicateBooking: 相同鍵已有 scheduled 預約（Conflict）
// - ErrInvalidMemberID / ErrInvalidClassEventID / ErrInvalidOccurrence: 輸入無效
func (uc *ScheduleBookingUseCase) Execute(cmd ScheduleBookingCommand) (*BookingResult, error) {
	memberID, err := booking.MemberIDFromString(cmd.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member ID: %w", err)
	}
	eventID, err := booking.NewClassEventID(cmd.EventID)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(memberID, eventID, cmd.OccursAt, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	unlock := uc.locker.Lock(b.SlotKey())
	defer unlock()

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		exists, err := uc.bookingRepo.ExistsActive(ctx, memberID, eventID, b.OccursAt())
		if err != nil {
			return fmt.Errorf("failed to check booking: %w", err)
		}
		if exists {
			return booking.ErrDuplicateBooking.WithContext(
				"member_id", memberID.String(),
				"event_id", eventID.Int64(),
				"occurs_at", b.OccursAt(),
			)
		}
		return uc.bookingRepo.Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, "schedule_booking", b.PullEvents())
	return newBookingResult(b), nil
}
