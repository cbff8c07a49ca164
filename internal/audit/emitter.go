package audit

import (
	"context"
	"fmt"
	"log/slog"

	"carbonledger/pkg/domain"
	"carbonledger/pkg/requestcontext"
)

// EventPublisher is the subset of Publisher that services need.
type EventPublisher interface {
	Emit(ctx context.Context, event Event) error
}

// Emitter writes a ledger event to the structured log and to the publisher.
// Both are optional. Publishing failures are logged, never returned: the
// state transition has already committed when an event is emitted.
type Emitter struct {
	logger    *slog.Logger
	publisher EventPublisher
}

func NewEmitter(logger *slog.Logger, publisher EventPublisher) *Emitter {
	return &Emitter{logger: logger, publisher: publisher}
}

// Emit records event name performed by actor. kv is a flat key/value list.
func (e *Emitter) Emit(ctx context.Context, name EventName, actor domain.Address, kv ...any) {
	if e == nil {
		return
	}
	fields := toFields(kv)
	if e.logger != nil {
		args := make([]any, 0, len(kv)+8)
		args = append(args, kv...)
		args = append(args, "event", string(name), "log_type", "audit", "actor", actor.String())
		if requestID := requestcontext.RequestID(ctx); requestID != "" {
			args = append(args, "request_id", requestID)
		}
		e.logger.InfoContext(ctx, string(name), args...)
	}
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Emit(ctx, Event{Name: name, Actor: actor, Fields: fields}); err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to emit ledger event",
			"event", string(name),
			"error", err,
		)
	}
}

func toFields(kv []any) map[string]string {
	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		fields[key] = fmt.Sprint(kv[i+1])
	}
	return fields
}
