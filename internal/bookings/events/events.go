package events

import (
	"context"
	"strconv"

	"reservations/pkg/kafka"
)

const (
	TypeBookingCreated = "booking.created"
	TypeBookingUpdated = "booking.updated"
	TypeBookingDeleted = "booking.deleted"

	SchemaVersion = "1"
	Source        = "bookings"
)

// Event is a booking change notification. Payload is the stored booking for
// created/updated and the delete confirmation for deleted.
type Event struct {
	Type          string
	BookingID     int64
	CorrelationID string
	Payload       any
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to the bookings topic keyed by booking id,
// so every change to one booking lands on the same partition.
type KafkaPublisher struct {
	producer messageProducer
}

func NewKafkaPublisher(producer messageProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(event.BookingID, 10)).
		WithValue(event.Payload).
		WithEventID("").
		WithEventType(event.Type).
		WithCorrelationID(event.CorrelationID).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		return err
	}

	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
