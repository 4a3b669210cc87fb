package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueue_FIFOOrder(t *testing.T) {
	q := NewMemoryQueue[int]()
	ctx := context.Background()

	for _, v := range []int{1, 2, 3} {
		require.NoError(t, q.Enqueue(ctx, v))
	}

	for _, want := range []int{1, 2, 3} {
		d, err := q.Dequeue(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, d.Job)
	}
}

func TestMemoryQueue_DequeueEmptyReturnsErrEmpty(t *testing.T) {
	q := NewMemoryQueue[int]()

	_, err := q.Dequeue(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMemoryQueue_NackRedeliversFirst(t *testing.T) {
	q := NewMemoryQueue[string]()
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, "a"))
	require.NoError(t, q.Enqueue(ctx, "b"))

	first, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", first.Job)

	require.NoError(t, first.Nack())

	redelivered, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", redelivered.Job)

	second, err := q.Dequeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", second.Job)
}

func TestMemoryQueue_AckIsNoopAndDoesNotRequeue(t *testing.T) {
	q := NewMemoryQueue[string]()
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, "only"))

	d, err := q.Dequeue(ctx)
	require.NoError(t, err)
	require.NoError(t, d.Ack())

	assert.Equal(t, 0, q.Len())
}

func TestMemoryQueue_ConcurrentEnqueueDequeue(t *testing.T) {
	q := NewMemoryQueue[int]()
	ctx := context.Background()

	const n = 200

	var wg sync.WaitGroup

	wg.Add(n)

	for i := 0; i < n; i++ {
		go func(v int) {
			defer wg.Done()
			_ = q.Enqueue(ctx, v)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, n, q.Len())

	seen := make(map[int]bool, n)

	for i := 0; i < n; i++ {
		d, err := q.Dequeue(ctx)
		require.NoError(t, err)
		seen[d.Job] = true
	}

	assert.Len(t, seen, n)

	_, err := q.Dequeue(ctx)
	assert.ErrorIs(t, err, ErrEmpty)
}
