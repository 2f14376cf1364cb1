package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skillbridge/skillbridge/internal/core/events"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	DisputesResolved     *prometheus.CounterVec
	TrainingNeedsCreated prometheus.Counter
	TrainingNeedsCleared prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		DisputesResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skillbridge",
			Name:      "disputes_resolved_total",
			Help:      "Disputes moved to a terminal state, by resolution action.",
		}, []string{"action"}),
		TrainingNeedsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "skillbridge",
			Name:      "training_needs_created_total",
			Help:      "Training needs created by gap evaluation.",
		}),
		TrainingNeedsCleared: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "skillbridge",
			Name:      "training_needs_cleared_total",
			Help:      "Training needs removed because the gap closed.",
		}),
	}
}

// Handler serves the /metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterEventHandlers subscribes the counters to the domain event bus so
// every resolution and gap evaluation is counted where it happens.
func (m *Metrics) RegisterEventHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeDisputeResolved, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(*events.DisputeResolvedEvent); ok {
			m.DisputesResolved.WithLabelValues(e.Action).Inc()
		}
		return nil
	})

	bus.Subscribe(events.EventTypeTrainingNeedIdentified, func(ctx context.Context, event events.Event) error {
		m.TrainingNeedsCreated.Inc()
		return nil
	})

	bus.Subscribe(events.EventTypeTrainingNeedCleared, func(ctx context.Context, event events.Event) error {
		m.TrainingNeedsCleared.Inc()
		return nil
	})
}
