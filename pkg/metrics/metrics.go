package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels operations that succeeded
	OutcomeSuccess = "success"
	// OutcomeStoreError labels operations rejected by the store
	OutcomeStoreError = "store_error"
	// OutcomeInternalError labels operations that failed for any other reason
	OutcomeInternalError = "internal_error"
)

var (
	// Operations counts pipeline operations by outcome.
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_pipeline_operations_total",
			Help: "Number of pipeline operations.",
		},
		[]string{"operation", "outcome"},
	)

	// StoreCallTime observes the duration of the calls made to the store.
	StoreCallTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_pipeline_store_call_seconds",
			Help:    "Duration in seconds of the calls to the pipeline store.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"call"},
	)
)

// Register registers every collector of the package into the given registerer.
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{Operations, StoreCallTime} {
		if err := r.Register(c); err != nil {
			if _, already := err.(prometheus.AlreadyRegisteredError); already {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveOperation counts one operation with the given outcome.
func ObserveOperation(operation, outcome string) {
	Operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveStoreCall records the duration of one store call.
func ObserveStoreCall(call string, d time.Duration) {
	StoreCallTime.WithLabelValues(call).Observe(d.Seconds())
}
