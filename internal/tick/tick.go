// Package tick paces the producer and consumer polling loops.
//
// Every loop in the engine does a unit of work and then waits one tick
// interval before the next. The wait is cancellable: a Ticker returns early
// when its context is done, and can optionally be woken by a signal channel
// (used by consumers to react to an enqueue without waiting a full tick).
package tick

import (
	"context"
	"time"
)

// Ticker waits out a fixed interval.
//
// A Ticker is owned by a single goroutine.
type Ticker interface {
	// Wait blocks until the next tick.
	// Returns false if ctx is done.
	Wait(ctx context.Context) bool

	// WaitSignal blocks until the next tick or a receive on signal.
	// A nil signal never fires. Returns false if ctx is done.
	WaitSignal(ctx context.Context, signal <-chan struct{}) bool

	// Reset restarts the current interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultInterval is the loop cadence used when none is configured.
const DefaultInterval = 10 * time.Millisecond
