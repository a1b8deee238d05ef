package infrafx

import (
	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/events"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/lock"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		provideClock,
		provideLocker,
		events.NewInProcessBus,
		providePublisher,
		provideRegistry,
		provideGatherer,
		metrics.NewLedgerMetrics,
	),
	fx.Invoke(subscribeMetrics),
)

func provideClock() shared.Clock {
	return shared.SystemClock{}
}

func provideLocker() shared.KeyedLocker {
	return lock.NewKeyedMutex()
}

func providePublisher(bus *events.InProcessBus) shared.EventPublisher {
	return bus
}

// provideRegistry 每個應用程式一個 registry，附帶 Go runtime 與行程指標
func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideGatherer(reg *prometheus.Registry) (prometheus.Registerer, prometheus.Gatherer) {
	return reg, reg
}

func subscribeMetrics(bus *events.InProcessBus, m *metrics.LedgerMetrics) error {
	return bus.Subscribe(events.AllEvents, m)
}
