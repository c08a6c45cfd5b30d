package rabbitmq

import (
	"testing"
	"time"

	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublishing(t *testing.T) {
	at := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	id, err := kernel.NewOrderID(kernel.NewBusinessDate(at, time.UTC), 3)
	require.NoError(t, err)
	e, err := event.New(event.OrderUpdated, id, []byte(`{"id":"ORD-20261014003"}`), at)
	require.NoError(t, err)
	e.Seq = 17

	msg := newPublishing(e)

	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, e.ID.String(), msg.MessageId)
	assert.Equal(t, "orderUpdated", msg.Type)
	assert.Equal(t, at, msg.Timestamp)
	assert.Equal(t, "ORD-20261014003", msg.Headers["order_id"])
	assert.Equal(t, int64(17), msg.Headers["seq"])
	assert.Equal(t, e.Payload, msg.Body)
}
