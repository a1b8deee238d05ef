package booking

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

const (
	EventTypeBookingScheduled = "booking.scheduled"
	EventTypeBookingArchived  = "booking.archived"
)

// BookingScheduledEvent 預約成立事件
type BookingScheduledEvent struct {
	shared.BaseEvent
	memberID MemberID
	eventID  ClassEventID
	occursAt time.Time
}

// NewBookingScheduledEvent 建立預約成立事件
func NewBookingScheduledEvent(b *Booking, occurredAt time.Time) *BookingScheduledEvent {
	return &BookingScheduledEvent{
		BaseEvent: shared.NewBaseEvent(EventTypeBookingScheduled, b.id.String(), occurredAt),
		memberID:  b.memberID,
		eventID:   b.eventID,
		occursAt:  b.occursAt,
	}
}

func (e *BookingScheduledEvent) MemberID() MemberID { return e.memberID }
func (e *BookingScheduledEvent) ClassEventID() ClassEventID { return e.eventID }
func (e *BookingScheduledEvent) OccursAt() time.Time { return e.occursAt }

// BookingArchivedEvent 預約封存事件
type BookingArchivedEvent struct {
	shared.BaseEvent
	memberID MemberID
	eventID  ClassEventID
}

// NewBookingArchivedEvent 建立預約封存事件
func NewBookingArchivedEvent(b *Booking, occurredAt time.Time) *BookingArchivedEvent {
	return &BookingArchivedEvent{
		BaseEvent: shared.NewBaseEvent(EventTypeBookingArchived, b.id.String(), occurredAt),
		memberID:  b.memberID,
		eventID:   b.eventID,
	}
}

func (e *BookingArchivedEvent) MemberID() MemberID { return e.memberID }
func (e *BookingArchivedEvent) ClassEventID() ClassEventID { return e.eventID }
