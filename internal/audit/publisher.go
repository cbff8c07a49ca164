package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"carbonledger/pkg/requestcontext"
)

// Sink forwards events to an external observer such as a Kafka topic.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher records ledger events. Every event lands in the store
// synchronously; forwarding to the sink is optionally buffered so a slow
// broker never holds up a ledger call.
type Publisher struct {
	store  Store
	sink   Sink
	events chan Event
	wg     sync.WaitGroup
	logger *slog.Logger
	async  bool
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithAsyncBuffer enables async forwarding with the specified buffer size.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan Event, size)
			p.async = true
		}
	}
}

// WithPublisherLogger sets a logger for sink error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithSink forwards every recorded event to sink.
func WithSink(sink Sink) PublisherOption {
	return func(p *Publisher) {
		p.sink = sink
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.async && p.sink != nil {
		p.wg.Add(1)
		go p.forwardEvents()
	}
	return p
}

func (p *Publisher) forwardEvents() {
	defer p.wg.Done()
	for event := range p.events {
		p.forward(context.Background(), event)
	}
}

func (p *Publisher) forward(ctx context.Context, event Event) {
	if err := p.sink.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("failed to forward ledger event",
			"error", err,
			"event", event.Name,
			"event_id", event.ID,
		)
	}
}

// Close shuts down the async forwarder and waits for pending events to drain.
func (p *Publisher) Close() {
	if p.async && p.sink != nil {
		close(p.events)
		p.wg.Wait()
	}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.sink == nil {
		return nil
	}
	if !p.async {
		p.forward(ctx, event)
		return nil
	}
	// Non-blocking send; the event stays in the store if the buffer is full.
	select {
	case p.events <- event:
	default:
		if p.logger != nil {
			p.logger.Warn("event forward buffer full, event not forwarded",
				"event", event.Name,
				"event_id", event.ID,
			)
		}
	}
	return nil
}

// Recent returns the newest events, newest first.
func (p *Publisher) Recent(ctx context.Context, limit int) ([]Event, error) {
	return p.store.Recent(ctx, limit)
}
