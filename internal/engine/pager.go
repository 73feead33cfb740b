package engine

import (
	"sync"
	"sync/atomic"
)

// Pager counts notifications shown in one display pane.
//
// When the count reaches the threshold it wraps to 0 and the wrap callback
// runs while the pager lock is still held, so no other increment can slip
// in between the wrap and the clear request. The pager lock is independent
// of the queue lock and is never held while acquiring it.
//
// Value does not take the lock, so hooks may read it at any time.
type Pager struct {
	mu        sync.Mutex
	count     int
	threshold int
	snapshot  atomic.Int64
}

// NewPager creates a Pager that wraps at threshold.
func NewPager(threshold int) *Pager {
	return &Pager{threshold: threshold}
}

// Inc adds one to the count. If the threshold is reached the count is
// reset to 0, onWrap is called (if non-nil) and Inc returns true.
func (p *Pager) Inc(onWrap func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count++
	if p.count < p.threshold {
		p.snapshot.Store(int64(p.count))
		return false
	}
	p.count = 0
	p.snapshot.Store(0)
	if onWrap != nil {
		onWrap()
	}
	return true
}

// Reset sets the count to 0.
func (p *Pager) Reset() {
	p.mu.Lock()
	p.count = 0
	p.snapshot.Store(0)
	p.mu.Unlock()
}

// Value returns the current count.
func (p *Pager) Value() int {
	return int(p.snapshot.Load())
}

// Threshold returns the wrap point.
func (p *Pager) Threshold() int {
	return p.threshold
}
