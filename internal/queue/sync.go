package queue

import "sync"

// compactAt is the head offset after which Pop copies the live items to
// the front of the backing slice.
const compactAt = 1024

// SyncQueue is an unbounded mutex-guarded FIFO.
//
// Only a single append or a single remove happens while the lock is held.
type SyncQueue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int

	ready chan struct{}
}

// NewSync creates an empty SyncQueue.
func NewSync[T any]() *SyncQueue[T] {
	return &SyncQueue[T]{
		ready: make(chan struct{}, 1),
	}
}

// Push adds an item to the tail of the queue.
// The queue has no capacity bound, so Push always returns true.
func (q *SyncQueue[T]) Push(v T) bool {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.mu.Unlock()

	// Non-blocking: one pending signal is enough to wake a waiter.
	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// Pop removes and returns the head of the queue.
// Returns false if the queue is empty.
func (q *SyncQueue[T]) Pop() (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return zero, false
	}

	v := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head >= compactAt && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return v, true
}

// Len returns the number of queued items.
// The value may be stale by the time the caller uses it.
func (q *SyncQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Ready returns a channel that receives a value after Push.
//
// Signals coalesce: many pushes may produce a single receive, so a woken
// consumer should keep popping until Pop returns false.
func (q *SyncQueue[T]) Ready() <-chan struct{} {
	return q.ready
}
