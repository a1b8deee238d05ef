package booking

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// GORMBookingRepository 預約倉儲實現（GORM）
type GORMBookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 創建新的預約倉儲實例
func NewBookingRepository(db *gorm.DB) booking.BookingRepository {
	return &GORMBookingRepository{db: db}
}

// Save 保存新預約
//
// 錯誤處理：
// - 部分唯一索引違反 → booking.ErrDuplicateBooking
// - 其他資料庫錯誤 → ErrUnavailable
func (r *GORMBookingRepository) Save(ctx shared.TransactionContext, b *booking.Booking) error {
	db := persistence.GetDB(ctx, r.db)

	result := db.Create(toGORM(b))
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return booking.ErrDuplicateBooking.WithContext(
				"member_id", b.MemberID().String(),
				"event_id", b.EventID().Int64(),
				"occurs_at", b.OccursAt().Format(time.RFC3339),
			)
		}
		return shared.WrapUnavailable("save booking", result.Error)
	}
	return nil
}

// Update 更新預約狀態
func (r *GORMBookingRepository) Update(ctx shared.TransactionContext, b *booking.Booking) error {
	db := persistence.GetDB(ctx, r.db)

	result := db.Model(&BookingGORM{}).
		Where("booking_id = ?", b.ID().String()).
		Updates(map[string]any{
			"status":     string(b.Status()),
			"updated_at": b.UpdatedAt(),
		})
	if result.Error != nil {
		if persistence.IsUniqueConstraintError(result.Error) {
			return booking.ErrDuplicateBooking.WithContext("booking_id", b.ID().String())
		}
		return shared.WrapUnavailable("update booking", result.Error)
	}
	if result.RowsAffected == 0 {
		return booking.ErrBookingNotFound.WithContext("booking_id", b.ID().String())
	}
	return nil
}

// FindByID 依 ID 查找預約
func (r *GORMBookingRepository) FindByID(ctx shared.TransactionContext, id booking.BookingID) (*booking.Booking, error) {
	db := persistence.GetDB(ctx, r.db)

	var model BookingGORM
	result := db.Where("booking_id = ?", id.String()).First(&model)
	if result.Error != nil {
		if persistence.IsRecordNotFound(result.Error) {
			return nil, booking.ErrBookingNotFound.WithContext("booking_id", id.String())
		}
		return nil, shared.WrapUnavailable("find booking", result.Error)
	}
	return model.toDomain()
}

// ExistsActive 該場次是否已有 scheduled 預約
func (r *GORMBookingRepository) ExistsActive(
	ctx shared.TransactionContext,
	memberID booking.MemberID,
	eventID booking.ClassEventID,
	occursAt time.Time,
) (bool, error) {
	db := persistence.GetDB(ctx, r.db)

	var count int64
	result := db.Model(&BookingGORM{}).
		Where("member_id = ? AND event_id = ? AND occurs_at = ? AND status = ?",
			memberID.String(), eventID.Int64(), booking.NormalizeOccurrence(occursAt), string(booking.StatusScheduled)).
		Count(&count)
	if result.Error != nil {
		return false, shared.WrapUnavailable("check booking slot", result.Error)
	}
	return count > 0, nil
}

// ExistsActiveForEvent 會員在該活動是否有 scheduled 預約
func (r *GORMBookingRepository) ExistsActiveForEvent(
	ctx shared.TransactionContext,
	memberID booking.MemberID,
	eventID booking.ClassEventID,
) (bool, error) {
	db := persistence.GetDB(ctx, r.db)

	var count int64
	result := db.Model(&BookingGORM{}).
		Where("member_id = ? AND event_id = ? AND status = ?",
			memberID.String(), eventID.Int64(), string(booking.StatusScheduled)).
		Count(&count)
	if result.Error != nil {
		return false, shared.WrapUnavailable("check booking", result.Error)
	}
	return count > 0, nil
}
