// Package rabbitmq publishes outbox events to a fanout exchange with
// publisher confirms. One Publisher owns one connection and one channel;
// Publish calls are serialized so that each confirmation matches its message.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cafe/internal/core/domain/model/event"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "order_events"
	contentType     = "application/json"
)

var ErrPublishNacked = errors.New("publish NACK from broker")

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	acks <-chan amqp.Confirmation
	mu   sync.Mutex
}

// Dial connects, declares the durable fanout exchange and enables confirms.
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Publisher{conn: conn, ch: ch, exchange: exchange, acks: acks}, nil
}

// Publish sends the event and waits for the broker's confirmation.
func (p *Publisher) Publish(ctx context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(e.Name), false, false, newPublishing(e)); err != nil {
		return err
	}

	select {
	case conf, ok := <-p.acks:
		if !ok {
			return amqp.ErrClosed
		}
		if !conf.Ack {
			return ErrPublishNacked
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ping reports whether the connection is still open.
func (p *Publisher) Ping() error {
	if p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// newPublishing maps an event to an AMQP message. The message id is the event
// id so that consumers can deduplicate redeliveries from the relay.
func newPublishing(e event.Event) amqp.Publishing {
	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  contentType,
		MessageId:    e.ID.String(),
		Type:         string(e.Name),
		Timestamp:    e.OccurredAt.UTC(),
		Headers: amqp.Table{
			"order_id": e.OrderID.String(),
			"seq":      e.Seq,
		},
		Body: e.Payload,
	}
}
