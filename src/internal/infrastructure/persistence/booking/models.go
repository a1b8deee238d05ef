package booking

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
)

// BookingGORM 預約資料表模型
//
// 資料庫約束：
// - booking_id: 主鍵（UUID）
// - idx_bookings_active_slot: (member_id, event_id, occurs_at) 的部分唯一索引，
//   只涵蓋 status = 'scheduled' 的資料列；archived 不佔用場次
type BookingGORM struct {
	BookingID string    `gorm:"column:booking_id;type:varchar(36);primaryKey"`
	MemberID  string    `gorm:"column:member_id;type:varchar(36);not null;uniqueIndex:idx_bookings_active_slot,priority:1,where:status = 'scheduled';index:idx_bookings_member_event,priority:1"`
	EventID   int64     `gorm:"column:event_id;not null;uniqueIndex:idx_bookings_active_slot,priority:2,where:status = 'scheduled';index:idx_bookings_member_event,priority:2"`
	OccursAt  time.Time `gorm:"column:occurs_at;not null;uniqueIndex:idx_bookings_active_slot,priority:3,where:status = 'scheduled'"`
	Status    string    `gorm:"column:status;type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (BookingGORM) TableName() string {
	return "bookings"
}

// Models 本套件需要遷移的資料表
func Models() []any {
	return []any{&BookingGORM{}}
}

func (g *BookingGORM) toDomain() (*booking.Booking, error) {
	id, err := booking.BookingIDFromString(g.BookingID)
	if err != nil {
		return nil, err
	}
	memberID, err := booking.MemberIDFromString(g.MemberID)
	if err != nil {
		return nil, err
	}
	eventID, err := booking.NewClassEventID(g.EventID)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id,
		memberID,
		eventID,
		g.OccursAt,
		booking.BookingStatus(g.Status),
		g.CreatedAt,
		g.UpdatedAt,
	)
}

func toGORM(b *booking.Booking) *BookingGORM {
	return &BookingGORM{
		BookingID: b.ID().String(),
		MemberID:  b.MemberID().String(),
		EventID:   b.EventID().Int64(),
		OccursAt:  booking.NormalizeOccurrence(b.OccursAt()),
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}
