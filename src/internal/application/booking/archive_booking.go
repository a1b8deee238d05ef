package booking

import (
	"log/slog"

	"github.com/jackyeh168/club_ledger/src/internal/application/common"
	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// ArchiveBookingCommand 封存預約的命令（管理操作）
type ArchiveBookingCommand struct {
	BookingID string
}

// ArchiveBookingUseCase 封存預約 Use Case
//
// 封存後該場次鍵不再被佔用，會員可重新預約同一場次。
type ArchiveBookingUseCase struct {
	bookingRepo booking.BookingRepository
	txManager   shared.TransactionManager
	locker      shared.KeyedLocker
	publisher   shared.EventPublisher
	clock       shared.Clock
	logger      *slog.Logger
}

// NewArchiveBookingUseCase 創建 Use Case 實例
func NewArchiveBookingUseCase(
	bookingRepo booking.BookingRepository,
	txManager shared.TransactionManager,
	locker shared.KeyedLocker,
	publisher shared.EventPublisher,
	clock shared.Clock,
	logger *slog.Logger,
) *ArchiveBookingUseCase {
	return &ArchiveBookingUseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		locker:      locker,
		publisher:   publisher,
		clock:       clock,
		logger:      logger,
	}
}

// Execute 執行封存
//
// 錯誤處理：
// - ErrBookingNotFound: 預約不存在
// - ErrInvalidStatusTransition: 預約已封存
func (uc *ArchiveBookingUseCase) Execute(cmd ArchiveBookingCommand) (*BookingResult, error) {
	bookingID, err := booking.BookingIDFromString(cmd.BookingID)
	if err != nil {
		return nil, err
	}

	current, err := uc.bookingRepo.FindByID(nil, bookingID)
	if err != nil {
		return nil, err
	}

	unlock := uc.locker.Lock(current.SlotKey())
	defer unlock()

	var archived *booking.Booking
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		b, err := uc.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := b.Archive(uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.bookingRepo.Update(ctx, b); err != nil {
			return err
		}
		archived = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.PublishEvents(uc.publisher, uc.logger, "archive_booking", archived.PullEvents())
	return newBookingResult(archived), nil
}
