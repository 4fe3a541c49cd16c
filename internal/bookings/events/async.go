package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"reservations/pkg/logger"
)

var ErrPublisherClosed = errors.New("event publisher is closed")

// AsyncPublisher hands each event to next on its own goroutine. The publish
// is detached from the caller's cancellation and bounded by timeout, so a
// committed change is never reported as failed because the broker is slow.
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	log     *logger.Logger

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

func NewAsyncPublisher(next Publisher, timeout time.Duration, log *logger.Logger) *AsyncPublisher {
	return &AsyncPublisher{
		next:    next,
		timeout: timeout,
		log:     log,
	}
}

func (p *AsyncPublisher) Publish(ctx context.Context, event Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()

		if err := p.next.Publish(ctx, event); err != nil {
			p.log.Error("Failed to publish booking event",
				"event_type", event.Type,
				"id", event.BookingID,
				"correlation_id", event.CorrelationID,
				"error", err,
			)
		}
	}()

	return nil
}

// Close stops accepting events, waits for in-flight publishes, then closes next.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	p.inflight.Wait()
	return p.next.Close()
}
