package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispute outcome label values.
const (
	DisputeOpened      = "opened"
	DisputeResolved    = "resolved"
	DisputeChargedBack = "charged_back"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Record metrics
	RecordsProcessed *prometheus.CounterVec
	RecordsRejected  *prometheus.CounterVec
	ParseErrors      prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Counter

	// Dispute metrics
	Disputes *prometheus.CounterVec

	// Run metrics
	RunDuration prometheus.Histogram
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Record metrics
		RecordsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_records_total",
				Help: "Total records applied to the engine by type",
			},
			[]string{"type"},
		),
		RecordsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_records_rejected_total",
				Help: "Total records rejected by type and error category",
			},
			[]string{"type", "category"},
		),
		ParseErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_parse_errors_total",
			Help: "Total malformed input records",
		}),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "payengine_accounts_locked_total",
			Help: "Total number of accounts locked by a chargeback",
		}),

		// Dispute metrics
		Disputes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payengine_disputes_total",
				Help: "Total dispute transitions by outcome",
			},
			[]string{"outcome"},
		),

		// Run metrics
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payengine_run_duration_seconds",
			Help:    "Duration of a full processing run",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}
