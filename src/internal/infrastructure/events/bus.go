package events

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// AllEvents 訂閱所有事件類型
const AllEvents = "*"

// InProcessBus 行程內同步事件匯流排
//
// 事件在 Use Case 提交事務後發布；處理器同步執行，
// 單一處理器失敗不影響其他處理器，錯誤合併後回傳給發布者。
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	logger   *slog.Logger
}

var (
	_ shared.EventPublisher  = (*InProcessBus)(nil)
	_ shared.EventSubscriber = (*InProcessBus)(nil)
)

// NewInProcessBus 創建事件匯流排
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		handlers: make(map[string][]shared.EventHandler),
		logger:   logger,
	}
}

// Subscribe 註冊處理器；eventType 為 AllEvents 時接收所有事件
func (b *InProcessBus) Subscribe(eventType string, handler shared.EventHandler) error {
	if eventType == "" {
		return errors.New("event type is required")
	}
	if handler == nil {
		return errors.New("handler is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// Publish 發布單一事件
func (b *InProcessBus) Publish(event shared.DomainEvent) error {
	if event == nil {
		return nil
	}

	b.logger.Info("ledger_event",
		"event", event.EventType(),
		"event_id", event.EventID(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt(),
	)

	b.mu.RLock()
	handlers := make([]shared.EventHandler, 0, len(b.handlers[event.EventType()])+len(b.handlers[AllEvents]))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.handlers[AllEvents]...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h.Handle(event); err != nil {
			errs = append(errs, fmt.Errorf("handle %s: %w", event.EventType(), err))
		}
	}
	return errors.Join(errs...)
}

// PublishBatch 依序發布多個事件
func (b *InProcessBus) PublishBatch(events []shared.DomainEvent) error {
	var errs []error
	for _, e := range events {
		if err := b.Publish(e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
