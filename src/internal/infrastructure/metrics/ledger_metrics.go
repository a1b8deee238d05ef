package metrics

import (
	"fmt"

	"github.com/jackyeh168/club_ledger/src/internal/domain/booking"
	"github.com/jackyeh168/club_ledger/src/internal/domain/points"
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "club_ledger"

// LedgerMetrics 將領域事件轉為 Prometheus 指標
//
// 以 shared.EventHandler 的形式訂閱事件匯流排（所有事件類型）。
type LedgerMetrics struct {
	events         *prometheus.CounterVec
	pointsEarned   *prometheus.CounterVec
	pointsRedeemed prometheus.Counter
	bookings       *prometheus.CounterVec
	rejections     *prometheus.CounterVec
}

var _ shared.EventHandler = (*LedgerMetrics)(nil)

// NewLedgerMetrics 註冊指標；reg 為 nil 時使用 prometheus.DefaultRegisterer
func NewLedgerMetrics(reg prometheus.Registerer) (*LedgerMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &LedgerMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events published after a committed write.",
		}, []string{"event_type"}),
		pointsEarned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_earned_total",
			Help:      "Points credited to member ledgers.",
		}, []string{"source"}),
		pointsRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_redeemed_total",
			Help:      "Points debited from member ledgers.",
		}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking state transitions.",
		}, []string{"status"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_rejections_total",
			Help:      "Operations rejected with a domain error, by operation and error kind.",
		}, []string{"operation", "kind"}),
	}

	collectors := []prometheus.Collector{m.events, m.pointsEarned, m.pointsRedeemed, m.bookings, m.rejections}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register ledger metric: %w", err)
		}
	}
	return m, nil
}

// EventType 實現 shared.EventHandler（訂閱所有事件）
func (m *LedgerMetrics) EventType() string { return "*" }

// Handle 實現 shared.EventHandler
func (m *LedgerMetrics) Handle(event shared.DomainEvent) error {
	m.events.WithLabelValues(event.EventType()).Inc()

	switch e := event.(type) {
	case *points.PointsEarnedEvent:
		m.pointsEarned.WithLabelValues(e.Source().String()).Add(float64(e.Amount().Value()))
	case *points.PointsRedeemedEvent:
		m.pointsRedeemed.Add(float64(e.Amount().Value()))
	case *booking.BookingScheduledEvent:
		m.bookings.WithLabelValues(string(booking.StatusScheduled)).Inc()
	case *booking.BookingArchivedEvent:
		m.bookings.WithLabelValues(string(booking.StatusArchived)).Inc()
	}
	return nil
}

// RecordRejection 記錄被拒絕的操作（依錯誤類別）
func (m *LedgerMetrics) RecordRejection(operation string, err error) {
	if m == nil || err == nil {
		return
	}
	m.rejections.WithLabelValues(operation, string(shared.KindOf(err))).Inc()
}
