package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent 領域事件基礎介面
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型
	OccurredAt() time.Time // 發生時間
	AggregateID() string   // 聚合根 ID
}

// BaseEvent 領域事件共用欄位
//
// 各 bounded context 的事件嵌入 BaseEvent，只需補上自己的業務欄位。
type BaseEvent struct {
	eventID     string
	eventType   string
	aggregateID string
	occurredAt  time.Time
}

// NewBaseEvent 建立事件共用欄位
func NewBaseEvent(eventType, aggregateID string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		eventID:     uuid.New().String(),
		eventType:   eventType,
		aggregateID: aggregateID,
		occurredAt:  occurredAt,
	}
}

// EventID 實現 DomainEvent 介面
func (e BaseEvent) EventID() string { return e.eventID }

// EventType 實現 DomainEvent 介面
func (e BaseEvent) EventType() string { return e.eventType }

// OccurredAt 實現 DomainEvent 介面
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// AggregateID 實現 DomainEvent 介面
func (e BaseEvent) AggregateID() string { return e.aggregateID }

// EventPublisher 事件發布器介面
// 設計原則：介面定義在 Domain Layer（使用者），由 Infrastructure 實作
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}

// EventSubscriber 事件訂閱器介面
type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) error
}

// EventHandler 事件處理器介面
type EventHandler interface {
	Handle(event DomainEvent) error
	EventType() string
}
