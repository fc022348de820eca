package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mutations counts record mutations by entity kind, operation and result
	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_mutations_total",
			Help: "Number of list record mutations",
		},
		[]string{"kind", "op", "result"}, // result: ok, not_found, invalid, error
	)

	// VisiblePageDuration tracks how long it takes to compute a visible page
	VisiblePageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "listing_visible_page_duration_seconds",
			Help: "Duration of visible page computation in seconds",
			Buckets: []float64{
				0.0001, // 100us
				0.0005, // 500us
				0.001,  // 1ms
				0.005,  // 5ms
				0.01,   // 10ms
				0.05,   // 50ms
				0.1,    // 100ms
				0.5,    // 500ms
			},
		},
		[]string{"kind"},
	)
)

// Result label values
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// RecordMutation increments the mutation counter
func RecordMutation(kind, op, result string) {
	Mutations.WithLabelValues(kind, op, result).Inc()
}

// RecordVisiblePageDuration records the duration of a visible page computation
func RecordVisiblePageDuration(kind string, duration float64) {
	VisiblePageDuration.WithLabelValues(kind).Observe(duration)
}
