package queue_test

import (
	"testing"
	"time"

	"github.com/randomizedcoder/prodcons/internal/queue"
)

func testQueue[T comparable](t *testing.T, q queue.Queue[T], val T, name string) {
	t.Helper()

	// Empty queue returns false
	if _, ok := q.Pop(); ok {
		t.Errorf("%s: expected Pop() = false on empty queue", name)
	}

	// Push succeeds
	if !q.Push(val) {
		t.Errorf("%s: expected Push() = true", name)
	}

	// Pop returns pushed value
	got, ok := q.Pop()
	if !ok {
		t.Errorf("%s: expected Pop() = true after Push()", name)
	}
	if got != val {
		t.Errorf("%s: expected %v, got %v", name, val, got)
	}

	// Queue is empty again
	if _, ok := q.Pop(); ok {
		t.Errorf("%s: expected Pop() = false after draining", name)
	}
}

type item struct {
	seq   int
	value int
}

func TestSyncQueue(t *testing.T) {
	testQueue[int](t, queue.NewSync[int](), 42, "SyncQueue[int]")
	testQueue[item](t, queue.NewSync[item](), item{seq: 1, value: 99}, "SyncQueue[item]")
}

func TestSyncQueue_EmptyNeverPanics(t *testing.T) {
	q := queue.NewSync[int]()
	for i := 0; i < 100; i++ {
		if v, ok := q.Pop(); ok || v != 0 {
			t.Fatalf("expected (0, false) on empty queue, got (%d, %v)", v, ok)
		}
	}
}

func TestSyncQueue_Unbounded(t *testing.T) {
	q := queue.NewSync[int]()
	const n = 100_000
	for i := 0; i < n; i++ {
		if !q.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}
	if q.Len() != n {
		t.Errorf("expected Len() = %d, got %d", n, q.Len())
	}
}

func TestSyncQueue_FIFO(t *testing.T) {
	q := queue.NewSync[int]()

	for i := 0; i < 5; i++ {
		if !q.Push(i) {
			t.Fatalf("expected Push(%d) = true", i)
		}
	}

	for i := 0; i < 5; i++ {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("expected Pop() = true for item %d", i)
		}
		if got != i {
			t.Errorf("FIFO violation: expected %d, got %d", i, got)
		}
	}
}

// TestSyncQueue_FIFO_Interleaved crosses the compaction threshold while
// pushing and popping, checking order survives the slice copy.
func TestSyncQueue_FIFO_Interleaved(t *testing.T) {
	q := queue.NewSync[int]()

	next := 0
	expected := 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 300; i++ {
			q.Push(next)
			next++
		}
		for i := 0; i < 200; i++ {
			got, ok := q.Pop()
			if !ok {
				t.Fatalf("round %d: unexpected empty queue", round)
			}
			if got != expected {
				t.Fatalf("FIFO violation: expected %d, got %d", expected, got)
			}
			expected++
		}
	}

	for {
		got, ok := q.Pop()
		if !ok {
			break
		}
		if got != expected {
			t.Fatalf("FIFO violation while draining: expected %d, got %d", expected, got)
		}
		expected++
	}

	if expected != next {
		t.Errorf("expected to drain %d items, drained %d", next, expected)
	}
	if q.Len() != 0 {
		t.Errorf("expected Len() = 0 after draining, got %d", q.Len())
	}
}

func TestSyncQueue_Len(t *testing.T) {
	q := queue.NewSync[int]()

	if q.Len() != 0 {
		t.Errorf("expected Len() = 0, got %d", q.Len())
	}

	q.Push(1)
	q.Push(2)

	if q.Len() != 2 {
		t.Errorf("expected Len() = 2, got %d", q.Len())
	}

	q.Pop()

	if q.Len() != 1 {
		t.Errorf("expected Len() = 1, got %d", q.Len())
	}
}

func TestSyncQueue_Ready(t *testing.T) {
	q := queue.NewSync[int]()

	select {
	case <-q.Ready():
		t.Fatal("expected no ready signal before Push()")
	default:
	}

	// Several pushes coalesce into one signal
	q.Push(1)
	q.Push(2)
	q.Push(3)

	select {
	case <-q.Ready():
	case <-time.After(time.Second):
		t.Fatal("expected ready signal after Push()")
	}

	select {
	case <-q.Ready():
		t.Error("expected signals to coalesce")
	default:
	}

	if q.Len() != 3 {
		t.Errorf("expected Len() = 3, got %d", q.Len())
	}
}

func TestQueueInterface(t *testing.T) {
	var q queue.Queue[string] = queue.NewSync[string]()
	testQueue(t, q, "record", "Queue[string]")
}
