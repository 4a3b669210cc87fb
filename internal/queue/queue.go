// Package queue implements the two job queues the bulk transfer pipeline
// hands work between - TRANSFERS and FINALIZERS - behind a single Queue
// interface so the rest of the system never depends on which broker
// backs it.
//
// Two implementations are provided: MemoryQueue, an in-process FIFO for
// tests and local development, and RabbitMQQueue, backed by
// common/mrabbitmq. Both only ever
// carry one job type per instance - the transfer worker pool reads from
// a Queue[domain.TransferJob], the finalizer pool from a
// Queue[domain.FinalizeBulkJob].
package queue

import (
	"context"
	"errors"
)

// ErrEmpty is returned by Dequeue when no job is currently available.
// Callers poll: on ErrEmpty they back off and retry rather than block
// forever, matching the reference broker's "404 No job in queue"
// behaviour translated to a Go error.
var ErrEmpty = errors.New("queue: empty")

// Delivery wraps one dequeued job together with the acknowledgement
// decision the consumer makes after it has tried to process it. Ack
// must only be called once the consumer's database transaction has
// committed; Nack puts the job back for redelivery. This is what lets
// a consumer crash mid-processing without losing the job - the worker
// and finalizer pools both ack-after-commit rather than auto-acking on
// receipt.
type Delivery[T any] struct {
	Job  T
	Ack  func() error
	Nack func() error
}

// Queue is the enqueue/dequeue boundary a job producer or consumer
// depends on. Implementations must be safe for concurrent use - the
// transfer worker pool and finalizer pool both run several goroutines
// pulling from the same Queue.
type Queue[T any] interface {
	// Enqueue appends job to the tail of the queue.
	Enqueue(ctx context.Context, job T) error
	// Dequeue removes and returns the oldest pending job as a Delivery.
	// It returns ErrEmpty, not a blocking wait, when the queue has
	// nothing pending.
	Dequeue(ctx context.Context) (Delivery[T], error)
	// Close releases any resources (connections, channels) the queue
	// implementation holds.
	Close() error
}
