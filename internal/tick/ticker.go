package tick

import (
	"context"
	"time"
)

// StdTicker wraps time.Ticker for the Ticker interface.
//
// Ticks keep a fixed cadence: time spent working between waits is absorbed
// into the interval rather than added to it. Missed ticks are dropped.
type StdTicker struct {
	ticker   *time.Ticker
	interval time.Duration
}

// NewTicker creates a StdTicker with the specified interval.
// A non-positive interval falls back to DefaultInterval.
func NewTicker(interval time.Duration) *StdTicker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &StdTicker{
		ticker:   time.NewTicker(interval),
		interval: interval,
	}
}

// Wait blocks until the next tick or until ctx is done.
func (t *StdTicker) Wait(ctx context.Context) bool {
	return t.WaitSignal(ctx, nil)
}

// WaitSignal blocks until the next tick, a receive on signal, or ctx is done.
func (t *StdTicker) WaitSignal(ctx context.Context, signal <-chan struct{}) bool {
	select {
	case <-ctx.Done():
		return false
	case <-t.ticker.C:
		return true
	case <-signal:
		return true
	}
}

// Reset resets the ticker to start a new interval from now.
func (t *StdTicker) Reset() {
	t.ticker.Reset(t.interval)
}

// Stop stops the ticker and releases resources.
func (t *StdTicker) Stop() {
	t.ticker.Stop()
}

// Interval returns the ticker's interval.
func (t *StdTicker) Interval() time.Duration {
	return t.interval
}
