package queue

import (
	"context"
	"sync"
)

// MemoryQueue is an in-process FIFO queue: every job of the same type
// lives in one slice, appended on Enqueue and popped from the front on
// Dequeue. It exists for running the whole pipeline without a real
// broker - tests and local development.
type MemoryQueue[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewMemoryQueue returns an empty MemoryQueue.
func NewMemoryQueue[T any]() *MemoryQueue[T] {
	return &MemoryQueue[T]{}
}

// Enqueue implements Queue.
func (q *MemoryQueue[T]) Enqueue(_ context.Context, job T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, job)

	return nil
}

// Dequeue implements Queue. The returned Delivery's Ack is a no-op -
// the job is already removed from the slice - and Nack pushes the job
// back onto the front of the queue so it is the next one redelivered.
func (q *MemoryQueue[T]) Dequeue(_ context.Context) (Delivery[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Delivery[T]{}, ErrEmpty
	}

	job := q.items[0]
	q.items = q.items[1:]

	return Delivery[T]{
		Job: job,
		Ack: func() error { return nil },
		Nack: func() error {
			q.mu.Lock()
			defer q.mu.Unlock()

			q.items = append([]T{job}, q.items...)

			return nil
		},
	}, nil
}

// Close implements Queue. MemoryQueue holds no external resource.
func (q *MemoryQueue[T]) Close() error {
	return nil
}

// Len reports the number of jobs currently pending, mainly useful from
// tests asserting on queue state.
func (q *MemoryQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
