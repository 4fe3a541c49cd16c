package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"

	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultConflict = "conflict"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Metrics holds the booking store collectors.
type Metrics struct {
	operations *prometheus.CounterVec
	stored     prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil registerer
// leaves them unregistered, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: "bookings",
				Name:      "operations_total",
				Help:      "Booking store operations by operation and result.",
			},
			[]string{"operation", "result"},
		),
		stored: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Subsystem: "bookings",
				Name:      "stored",
				Help:      "Number of bookings currently stored.",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.operations, m.stored)
	}

	return m
}

func (m *Metrics) Observe(operation, result string) {
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) SetStored(n int64) {
	m.stored.Set(float64(n))
}

func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.operations
}

func (m *Metrics) Stored() prometheus.Gauge {
	return m.stored
}
