// Package queue provides the shared record queue.
//
// SyncQueue is an unbounded FIFO guarded by a single mutex. It is safe for
// any number of producers and consumers:
//   - Push appends under the lock and always succeeds
//   - Pop checks and takes the head in one critical section
//   - Len is an advisory snapshot
//
// # Empty Queue
//
// Pop on an empty queue returns (zero, false). It never panics, and there is
// no separate "check length then take" step that two consumers could race
// on: whichever consumer acquires the lock first takes the last element and
// the other sees false.
package queue

// Queue is a non-blocking FIFO.
//
// Push returns false if the item was not accepted,
// Pop returns false if the queue is empty.
type Queue[T any] interface {
	// Push adds an item to the tail of the queue.
	Push(T) bool

	// Pop removes and returns the head of the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// Len returns the number of queued items.
	Len() int
}
