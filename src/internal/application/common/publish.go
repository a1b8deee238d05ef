package common

import (
	"log/slog"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
)

// PublishEvents 在事務提交後發布領域事件
//
// 寫入已經提交，發布失敗不回滾也不回傳錯誤，只記錄 warn。
func PublishEvents(publisher shared.EventPublisher, logger *slog.Logger, operation string, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.PublishBatch(events); err != nil && logger != nil {
		logger.Warn("publish domain events failed",
			"operation", operation,
			"events", len(events),
			"error", err,
		)
	}
}
