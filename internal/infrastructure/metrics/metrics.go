package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Engine metrics
	EventsProcessed *prometheus.CounterVec
	EventsIgnored   *prometheus.CounterVec
	AccountsLocked  prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg. Passing nil creates
// unregistered metrics, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_events_processed_total",
				Help: "Total number of events applied to the ledger by type",
			},
			[]string{"type"},
		),
		EventsIgnored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_events_ignored_total",
				Help: "Total number of events rejected by a precondition, by reason",
			},
			[]string{"reason"},
		),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_locked_total",
			Help: "Total number of accounts locked by a chargeback",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payengine_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
