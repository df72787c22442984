package outbox

import (
	"encoding/json"
	"time"

	"github.com/ecomlabs/checkout/internal/service/models/order"
)

const (
	OrderCreatedQueue = "checkout.order.created"

	defaultMaxRetries = 5
)

// OutboxMessage is an event staged for RabbitMQ delivery. It is inserted in
// the same transaction as the state change it announces and published later
// by the outbox worker.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}

// NewOrderCreatedMessage stages an order.created event for the given order.
func NewOrderCreatedMessage(o order.Order, now time.Time) (OutboxMessage, error) {
	payload, err := json.Marshal(o)
	if err != nil {
		return OutboxMessage{}, err
	}

	return OutboxMessage{
		QueueName:   OrderCreatedQueue,
		RoutingKey:  OrderCreatedQueue,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  defaultMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}, nil
}
