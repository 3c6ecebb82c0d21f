package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// IdentifyTotal counts identification requests by outcome.
	IdentifyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "celestial",
		Subsystem: "relay",
		Name:      "identify_total",
		Help:      "Total identification requests handled by the relay, labeled by outcome.",
	}, []string{"outcome"})

	// IdentifyDurationSeconds is end-to-end time per request, including the
	// upstream model call.
	IdentifyDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "celestial",
		Subsystem: "relay",
		Name:      "identify_duration_seconds",
		Help:      "End-to-end time of one identification request, including the upstream call.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 60, 120},
	}, []string{"outcome"})
)

// Register registers relay metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			IdentifyTotal,
			IdentifyDurationSeconds,
		)
	})
}
