package subscription

import (
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

const (
	EventTypeSubscriptionStarted = "subscription.started"
	EventTypeSubscriptionChanged = "subscription.changed"
)

// SubscriptionStartedEvent 訂閱建立事件
type SubscriptionStartedEvent struct {
	shared.BaseEvent
	memberID MemberID
	planCode PlanCode
	expiry   Expiry
}

// NewSubscriptionStartedEvent 建立訂閱建立事件
func NewSubscriptionStartedEvent(
	id SubscriptionID,
	memberID MemberID,
	planCode PlanCode,
	expiry Expiry,
	occurredAt time.Time,
) *SubscriptionStartedEvent {
	return &SubscriptionStartedEvent{
		BaseEvent: shared.NewBaseEvent(EventTypeSubscriptionStarted, id.String(), occurredAt),
		memberID:  memberID,
		planCode:  planCode,
		expiry:    expiry,
	}
}

// MemberID 會員 ID
func (e *SubscriptionStartedEvent) MemberID() MemberID { return e.memberID }

// PlanCode 方案代碼
func (e *SubscriptionStartedEvent) PlanCode() PlanCode { return e.planCode }

// Expiry 到期日
func (e *SubscriptionStartedEvent) Expiry() Expiry { return e.expiry }

// SubscriptionChangedEvent 訂閱開始日或方案變更事件
type SubscriptionChangedEvent struct {
	shared.BaseEvent
	previousExpiry Expiry
	expiry         Expiry
}

// NewSubscriptionChangedEvent 建立訂閱變更事件
func NewSubscriptionChangedEvent(
	id SubscriptionID,
	previousExpiry Expiry,
	expiry Expiry,
	occurredAt time.Time,
) *SubscriptionChangedEvent {
	return &SubscriptionChangedEvent{
		BaseEvent:      shared.NewBaseEvent(EventTypeSubscriptionChanged, id.String(), occurredAt),
		previousExpiry: previousExpiry,
		expiry:         expiry,
	}
}

// PreviousExpiry 變更前的到期日
func (e *SubscriptionChangedEvent) PreviousExpiry() Expiry { return e.previousExpiry }

// Expiry 變更後的到期日
func (e *SubscriptionChangedEvent) Expiry() Expiry { return e.expiry }
