package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

type stubEvent struct {
	shared.BaseEvent
}

type stubPublisher struct {
	published []shared.DomainEvent
	err       error
}

func (p *stubPublisher) Publish(event shared.DomainEvent) error {
	return p.PublishBatch([]shared.DomainEvent{event})
}

func (p *stubPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.published = append(p.published, events...)
	return p.err
}

func TestPublishEvents_Delivers(t *testing.T) {
	pub := &stubPublisher{}
	events := []shared.DomainEvent{&stubEvent{shared.NewBaseEvent("x", "a", time.Now())}}

	PublishEvents(pub, nil, "earn", events)

	assert.Len(t, pub.published, 1)
}

func TestPublishEvents_FailureLoggedAsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	pub := &stubPublisher{err: errors.New("bus down")}
	events := []shared.DomainEvent{&stubEvent{shared.NewBaseEvent("x", "a", time.Now())}}

	PublishEvents(pub, logger, "redeem", events)

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "operation=redeem")
	assert.Contains(t, buf.String(), "bus down")
}

func TestPublishEvents_NilPublisherOrNoEvents(t *testing.T) {
	assert.NotPanics(t, func() {
		PublishEvents(nil, nil, "earn", []shared.DomainEvent{&stubEvent{}})
		PublishEvents(&stubPublisher{}, nil, "earn", nil)
	})
}
