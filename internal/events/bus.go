package events

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// ErrClosed is returned by Emit after Close.
var ErrClosed = errors.New("events: bus closed")

// spinRetries is the number of write attempts on a full lane between yields.
const spinRetries = 16

// Bus is a multi-lane event ring with a single dispatcher.
//
// Each emitting goroutine must use its own lane. Lane IDs are 0..lanes-1.
type Bus struct {
	Hooks

	ring    *ring.ShardedRing
	writers []*ring.Writer
	shards  uint64
	lanes  int
	logger *slog.Logger

	wake chan struct{}
	done chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
	closed    atomic.Bool

	emitted   atomic.Uint64
	delivered atomic.Uint64
}

// New creates a Bus with room for capacity pending events spread over
// lanes lanes. Both are rounded up to a power of two.
func New(capacity, lanes int, logger *slog.Logger) (*Bus, error) {
	if lanes < 1 {
		return nil, fmt.Errorf("events: lanes must be >= 1, got %d", lanes)
	}
	if capacity < 1 {
		return nil, fmt.Errorf("events: capacity must be >= 1, got %d", capacity)
	}
	if logger == nil {
		logger = slog.Default()
	}

	shards := nextPow2(uint64(lanes))
	total := nextPow2(uint64(capacity))
	if total < shards {
		total = shards
	}

	r, err := ring.NewShardedRing(total, shards)
	if err != nil {
		return nil, fmt.Errorf("events: failed to create ring: %w", err)
	}

	// Writers retry on their own shard only, so each lane stays in order.
	writers := make([]*ring.Writer, lanes)
	for lane := range writers {
		writers[lane] = ring.NewWriter(r, uint64(lane), ring.WriteConfig{
			Strategy:   ring.SpinThenYield,
			MaxRetries: spinRetries,
		})
	}

	return &Bus{
		ring:    r,
		writers: writers,
		shards:  shards,
		lanes:   lanes,
		logger:  logger.With("component", "events"),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}, nil
}

// Start launches the dispatcher goroutine. Subsequent calls are no-ops.
func (b *Bus) Start() {
	b.startOnce.Do(func() {
		go b.dispatch()
	})
}

// Emit queues ev on the given lane.
//
// Emit never drops an event: when the lane is full it yields until the
// dispatcher makes room. A lane's writer is not safe for concurrent use.
func (b *Bus) Emit(lane int, ev Event) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if lane < 0 || lane >= b.lanes {
		return fmt.Errorf("events: lane %d out of range [0,%d)", lane, b.lanes)
	}

	if !b.writers[lane].Write(ev) {
		return fmt.Errorf("events: lane %d full", lane)
	}
	b.emitted.Add(1)
	b.signal()
	return nil
}

// Close stops accepting events, delivers everything already queued, and
// waits for the dispatcher to exit. Safe to call multiple times.
//
// Close must not be called from a hook: the dispatcher would wait for
// itself.
//
// Close must not be called concurrently with Emit from a lane that is
// still active, or that lane's last events may be lost.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		b.closed.Store(true)
		b.Start()
		b.signal()
	})
	<-b.done
}

// Emitted returns the number of events accepted by Emit.
func (b *Bus) Emitted() uint64 {
	return b.emitted.Load()
}

// Delivered returns the number of events handed to hooks.
func (b *Bus) Delivered() uint64 {
	return b.delivered.Load()
}

// Lanes returns the number of lanes.
func (b *Bus) Lanes() int {
	return b.lanes
}

func (b *Bus) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Bus) dispatch() {
	defer close(b.done)

	b.logger.Debug("event dispatcher started", "lanes", b.lanes, "shards", b.shards)

	for {
		b.drain()
		if b.closed.Load() {
			// Emitters finished before Close; pick up their last writes.
			b.drain()
			b.logger.Debug("event dispatcher stopped",
				"emitted", b.emitted.Load(),
				"delivered", b.delivered.Load(),
			)
			return
		}
		<-b.wake
	}
}

func (b *Bus) drain() {
	for {
		v, ok := b.ring.TryRead()
		if !ok {
			return
		}
		ev, ok := v.(Event)
		if !ok {
			b.logger.Error("dropping unexpected ring value", "type", fmt.Sprintf("%T", v))
			continue
		}
		b.deliverSafe(ev)
		b.delivered.Add(1)
	}
}

func (b *Bus) deliverSafe(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event hook panicked", "kind", ev.Kind, "panic", r)
		}
	}()
	b.deliver(ev)
}

func nextPow2(v uint64) uint64 {
	n := uint64(1)
	for n < v {
		n <<= 1
	}
	return n
}
