package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/r-o-main/bulk-transfer-api/common/mrabbitmq"
)

// RabbitMQQueue is a RabbitMQ-backed Queue built on common/mrabbitmq's
// connection wrapper. It deliberately does not auto-ack: messages are only acknowledged once
// the caller's Delivery.Ack is invoked, which the transfer worker and
// finalizer only do after their database transaction has committed. A
// worker that dies mid-job leaves the message unacked, so RabbitMQ
// redelivers it - the at-least-once behaviour the transaction and
// bulk-request idempotency checks absorb.
type RabbitMQQueue[T any] struct {
	conn       *mrabbitmq.RabbitMQConnection
	queueName  string
	deliveries <-chan amqp.Delivery
}

// NewRabbitMQQueue declares queueName as a durable queue and starts
// consuming from it with auto-ack disabled.
func NewRabbitMQQueue[T any](ctx context.Context, conn *mrabbitmq.RabbitMQConnection, queueName string) (*RabbitMQQueue[T], error) {
	ch, err := conn.GetChannel(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, err
	}

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &RabbitMQQueue[T]{
		conn:       conn,
		queueName:  queueName,
		deliveries: deliveries,
	}, nil
}

// Enqueue implements Queue. It publishes directly to queueName via the
// default exchange, matching the default-exchange routing every other
// queue in this package relies on.
func (q *RabbitMQQueue[T]) Enqueue(ctx context.Context, job T) error {
	ch, err := q.conn.GetChannel(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return ch.Publish(
		"",
		q.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Dequeue implements Queue. It never blocks: with nothing immediately
// available on the delivery channel it returns ErrEmpty so callers can
// apply their own backoff between polls.
func (q *RabbitMQQueue[T]) Dequeue(ctx context.Context) (Delivery[T], error) {
	select {
	case d, ok := <-q.deliveries:
		if !ok {
			return Delivery[T]{}, ErrEmpty
		}

		var job T

		if err := json.Unmarshal(d.Body, &job); err != nil {
			_ = d.Nack(false, false)
			return Delivery[T]{}, err
		}

		delivery := d

		return Delivery[T]{
			Job:  job,
			Ack:  func() error { return delivery.Ack(false) },
			Nack: func() error { return delivery.Nack(false, true) },
		}, nil
	case <-ctx.Done():
		return Delivery[T]{}, ctx.Err()
	default:
		return Delivery[T]{}, ErrEmpty
	}
}

// Close implements Queue.
func (q *RabbitMQQueue[T]) Close() error {
	return q.conn.Close()
}
