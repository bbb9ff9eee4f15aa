package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes a single delivery.
// Return nil => ACK; return error => NACK (requeue behavior set on the Router).
type Handler interface {
	Handle(ctx context.Context, d amqp.Delivery) error
}
