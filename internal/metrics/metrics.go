// Package metrics counts data-layer operations with Prometheus collectors.
// Nothing is served over the network: the CLI writes the registry to a
// textfile that a node exporter can pick up.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing,
// so services can be built without one in tests.
type Metrics struct {
	ops     *prometheus.CounterVec
	deleted *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travelmaster",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Data-layer operations by entity kind, operation and result.",
		}, []string{"kind", "op", "result"}),
		deleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travelmaster",
			Subsystem: "store",
			Name:      "wiped_records_total",
			Help:      "Records removed by full data wipes, by entity kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.ops, m.deleted)
	return m
}

// Observe counts one operation on kind; a non-nil err counts as a failure.
func (m *Metrics) Observe(kind, op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.ops.WithLabelValues(kind, op, result).Inc()
}

// Wiped adds n removed records of kind.
func (m *Metrics) Wiped(kind string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.deleted.WithLabelValues(kind).Add(float64(n))
}

// WriteFile writes everything gathered by g to path in the text exposition
// format, replacing the file atomically.
func WriteFile(g prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, g)
}
