package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"carbonledger/internal/platform/kafka/producer"
	"carbonledger/pkg/platform/circuit"
)

// ErrSinkUnavailable is returned while the breaker keeps the sink open.
var ErrSinkUnavailable = errors.New("event sink unavailable")

// MessageProducer is satisfied by *producer.Producer.
type MessageProducer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaSink publishes events as JSON records keyed by event name. A circuit
// breaker stops hammering an unreachable broker; events skipped while it is
// open remain in the local store.
type KafkaSink struct {
	producer MessageProducer
	topic    string
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewKafkaSink(p MessageProducer, topic string, breaker *circuit.Breaker, logger *slog.Logger) *KafkaSink {
	if breaker == nil {
		breaker = circuit.New("event-sink")
	}
	return &KafkaSink{producer: p, topic: topic, breaker: breaker, logger: logger}
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	if !s.breaker.Allow() {
		return ErrSinkUnavailable
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	err = s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.Name),
		Value: payload,
		Headers: map[string]string{
			"event_id":   event.ID.String(),
			"event_name": string(event.Name),
		},
	})
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened && s.logger != nil {
			s.logger.Warn("event sink circuit opened", "breaker", s.breaker.Name(), "error", err)
		}
		return err
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed && s.logger != nil {
		s.logger.Info("event sink circuit closed", "breaker", s.breaker.Name())
	}
	return nil
}
