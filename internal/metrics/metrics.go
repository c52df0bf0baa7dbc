// Package metrics registers Prometheus instrumentation for the data
// layer. The embedding application decides whether and where to expose
// the default registry; this package only records.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ibrapro",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Store operations by collection and operation.",
	}, []string{"collection", "operation"})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ibrapro",
		Subsystem: "store",
		Name:      "operation_errors_total",
		Help:      "Failed store operations by collection and operation.",
	}, []string{"collection", "operation"})
)

// ObserveStoreOp records one store operation and, when err is non-nil,
// one failure.
func ObserveStoreOp(collection, operation string, err error) {
	storeOps.WithLabelValues(collection, operation).Inc()
	if err != nil {
		storeErrors.WithLabelValues(collection, operation).Inc()
	}
}
