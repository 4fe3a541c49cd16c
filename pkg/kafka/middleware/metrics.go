package kafka_middleware

import (
	"context"
	"time"

	"reservations/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics holds Kafka producer collectors
type Metrics struct {
	MessagesPublished *prometheus.CounterVec
	PublishDuration   *prometheus.HistogramVec
}

// NewMetrics creates producer collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MessagesPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kafka_messages_published_total",
			Help: "Messages handed to the Kafka producer, by topic and result.",
		}, []string{"topic", "result"}),
		PublishDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_publish_duration_seconds",
			Help:    "Time spent publishing a message to Kafka.",
			Buckets: prometheus.DefBuckets,
		}, []string{"topic"}),
	}

	if reg != nil {
		reg.MustRegister(m.MessagesPublished, m.PublishDuration)
	}

	return m
}

// MetricsProducerMiddleware tracks producer metrics
func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		m.PublishDuration.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())

		result := resultSuccess
		if err != nil {
			result = resultFailure
		}
		m.MessagesPublished.WithLabelValues(msg.Topic, result).Inc()

		return err
	}
}
