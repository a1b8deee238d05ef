package booking

import (
	"fmt"
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// BookingStatus 預約狀態
type BookingStatus string

const (
	// StatusScheduled 進行中（佔用場次）
	StatusScheduled BookingStatus = "scheduled"
	// StatusArchived 已封存（終止狀態，不再佔用場次）
	StatusArchived BookingStatus = "archived"
)

// ParseBookingStatus 解析狀態字串
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusScheduled, StatusArchived:
		return BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus.WithContext("input", s)
	}
}

// ===========================
// Booking Aggregate Root
// ===========================

// Booking 預約聚合根
//
// 狀態機（每個 (會員, 活動, 場次時間) 鍵）：
//
//	unbooked → scheduled → archived
//
// 不變量（Invariants）：
// 1. 同一鍵最多一筆 scheduled 預約（由 Repository 的部分唯一索引保證）
// 2. 場次時間以 UTC、秒精度保存，避免時區與毫秒差異造成「同一場次」被視為不同鍵
// 3. archived 為終止狀態
type Booking struct {
	id        BookingID
	memberID  MemberID
	eventID   ClassEventID
	occursAt  time.Time
	status    BookingStatus
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NormalizeOccurrence 場次時間正規化（UTC、截斷至秒）
func NormalizeOccurrence(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// NewBooking 建立新預約（scheduled 狀態）
func NewBooking(memberID MemberID, eventID ClassEventID, occursAt time.Time, now time.Time) (*Booking, error) {
	if memberID.IsEmpty() {
		return nil, ErrInvalidMemberID.WithContext("reason", "member id is required")
	}
	if eventID <= 0 {
		return nil, ErrInvalidClassEventID.WithContext("input", int64(eventID))
	}
	if occursAt.IsZero() {
		return nil, ErrInvalidOccurrence.WithContext("reason", "occurrence time is required")
	}

	b := &Booking{
		id:        NewBookingID(),
		memberID:  memberID,
		eventID:   eventID,
		occursAt:  NormalizeOccurrence(occursAt),
		status:    StatusScheduled,
		createdAt: now,
		updatedAt: now,
	}
	b.events = append(b.events, NewBookingScheduledEvent(b, now))
	return b, nil
}

// ReconstructBooking 重建預約聚合（用於從資料庫載入）
func ReconstructBooking(
	id BookingID,
	memberID MemberID,
	eventID ClassEventID,
	occursAt time.Time,
	status BookingStatus,
	createdAt time.Time,
	updatedAt time.Time,
) (*Booking, error) {
	if _, err := ParseBookingStatus(string(status)); err != nil {
		return nil, err
	}
	return &Booking{
		id:        id,
		memberID:  memberID,
		eventID:   eventID,
		occursAt:  NormalizeOccurrence(occursAt),
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Archive 管理操作：scheduled → archived
func (b *Booking) Archive(now time.Time) error {
	if b.status != StatusScheduled {
		return ErrInvalidStatusTransition.WithContext(
			"booking_id", b.id.String(),
			"from", string(b.status),
			"to", string(StatusArchived),
		)
	}
	b.status = StatusArchived
	b.updatedAt = now
	b.events = append(b.events, NewBookingArchivedEvent(b, now))
	return nil
}

// IsActive 是否佔用場次
func (b *Booking) IsActive() bool {
	return b.status == StatusScheduled
}

// SlotKey 場次鍵，用於序列化同一場次的寫入
func (b *Booking) SlotKey() string {
	return SlotKey(b.memberID, b.eventID, b.occursAt)
}

// SlotKey 組出 (會員, 活動, 場次時間) 的鍵
func SlotKey(memberID MemberID, eventID ClassEventID, occursAt time.Time) string {
	return fmt.Sprintf("booking:%s:%d:%d", memberID.String(), eventID, NormalizeOccurrence(occursAt).Unix())
}

func (b *Booking) ID() BookingID { return b.id }
func (b *Booking) MemberID() MemberID { return b.memberID }
func (b *Booking) EventID() ClassEventID { return b.eventID }
func (b *Booking) OccursAt() time.Time { return b.occursAt }
func (b *Booking) Status() BookingStatus { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// PullEvents 取出並清空尚未發布的領域事件
func (b *Booking) PullEvents() []shared.DomainEvent {
	events := b.events
	b.events = nil
	return events
}
