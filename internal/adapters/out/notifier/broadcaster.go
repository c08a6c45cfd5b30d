// Package notifier delivers order events to live observers after the change
// has been committed. Delivery is best effort: Emit never blocks the caller and
// a full buffer drops the event with a warning. Observers that must not miss
// anything read the outbox through GET /events.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"cafe/internal/core/domain/model/event"
)

// DefaultBufferSize is used when NewBroadcaster receives a non-positive size.
const DefaultBufferSize = 256

// Sink receives encoded messages, typically a WebSocket hub.
type Sink interface {
	Broadcast(data []byte) error
}

// Message is the wire envelope sent to observers.
type Message struct {
	Event event.Name      `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Broadcaster implements ports.EventNotifier on top of a bounded queue.
//
// Example:
//
//	hub := ws.NewHub(logger)
//	b := notifier.NewBroadcaster(hub, 256, logger)
//	go b.Run(ctx)
//
//	b.Emit(event.NewOrder, payload)
type Broadcaster struct {
	sink    Sink
	queue   chan Message
	logger  *slog.Logger
	dropped atomic.Int64
}

func NewBroadcaster(sink Sink, bufferSize int, logger *slog.Logger) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Broadcaster{
		sink:   sink,
		queue:  make(chan Message, bufferSize),
		logger: logger.With("component", "event_notifier"),
	}
}

// Emit enqueues the event and returns immediately.
func (b *Broadcaster) Emit(name event.Name, payload []byte) {
	msg := Message{Event: name, Data: json.RawMessage(payload)}

	select {
	case b.queue <- msg:
	default:
		b.dropped.Add(1)
		b.logger.Warn("Event buffer full, dropping event", "event", string(name))
	}
}

// Run forwards queued events to the sink until ctx is cancelled.
// Sink failures are logged and never stop the loop.
func (b *Broadcaster) Run(ctx context.Context) error {
	b.logger.InfoContext(ctx, "Event notifier started")
	defer b.logger.InfoContext(context.Background(), "Event notifier stopped")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-b.queue:
			b.deliver(ctx, msg)
		}
	}
}

func (b *Broadcaster) deliver(ctx context.Context, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.logger.WarnContext(ctx, "Failed to encode event", "event", string(msg.Event), "error", err)
		return
	}

	if err = b.sink.Broadcast(data); err != nil {
		b.logger.WarnContext(ctx, "Failed to broadcast event", "event", string(msg.Event), "error", err)
	}
}

// Dropped returns the number of events discarded because the buffer was full.
func (b *Broadcaster) Dropped() int64 {
	return b.dropped.Load()
}
