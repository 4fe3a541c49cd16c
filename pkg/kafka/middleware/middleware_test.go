package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"reservations/pkg/kafka"
	"reservations/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsProducerMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	mw := MetricsProducerMiddleware(m)

	msg := kafka.Message{Topic: "bookings.events", Key: "1", Value: []byte("{}")}
	ok := func(ctx context.Context, msg kafka.Message) error { return nil }
	fail := func(ctx context.Context, msg kafka.Message) error { return errors.New("boom") }

	_ = mw(context.Background(), msg, ok)
	_ = mw(context.Background(), msg, ok)
	if err := mw(context.Background(), msg, fail); err == nil {
		t.Fatal("expected error to propagate")
	}

	if got := testutil.ToFloat64(m.MessagesPublished.WithLabelValues("bookings.events", resultSuccess)); got != 2 {
		t.Errorf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(m.MessagesPublished.WithLabelValues("bookings.events", resultFailure)); got != 1 {
		t.Errorf("expected 1 failure, got %v", got)
	}
}

func TestLoggingProducerMiddleware_PassesThrough(t *testing.T) {
	mw := LoggingProducerMiddleware(logger.Discard())
	want := errors.New("boom")

	err := mw(context.Background(), kafka.Message{Key: "1"}, func(ctx context.Context, msg kafka.Message) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}
