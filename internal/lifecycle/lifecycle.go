// Package lifecycle provides the producer's run state.
//
// The state is a single atomic cell shared by the producer goroutine, the
// consumer goroutines, and whatever goroutine delivers start/stop requests.
// Every transition is a compare-and-swap, so concurrent requests never tear
// or lose a transition:
//
//	Idle    --RequestStart--> Start
//	Start   --Begin---------> Running   (producer)
//	Running --Finish--------> Idle      (producer)
//	Running --RequestStart--> Idle      (toggle)
//	Running --RequestStop---> Idle
//	Start   --RequestStop---> Idle
//
// RequestStart while in Start is ignored, so two quick presses yield
// exactly one run.
package lifecycle

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// State is the producer's run state.
type State int32

const (
	Idle State = iota
	Start
	Running
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Start:
		return "start"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Transition is called after every successful state change.
type Transition func(from, to State)

// Controller is the atomic state cell.
//
// The zero value is an Idle controller ready for use.
type Controller struct {
	state atomic.Int32

	mu        sync.RWMutex
	observers []Transition
}

// New creates an Idle Controller.
func New() *Controller {
	return &Controller{}
}

// Load returns the current state.
//
// This performs a single atomic load.
func (c *Controller) Load() State {
	return State(c.state.Load())
}

// Observe registers fn to be called after every transition.
// fn runs on the goroutine that made the transition and must not block.
func (c *Controller) Observe(fn Transition) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// RequestStart handles a start press and returns the resulting state.
//
// Idle becomes Start, Running becomes Idle, Start is left alone.
func (c *Controller) RequestStart() State {
	for {
		cur := c.Load()
		var next State
		switch cur {
		case Idle:
			next = Start
		case Running:
			next = Idle
		default:
			return cur
		}
		if c.cas(cur, next) {
			return next
		}
	}
}

// RequestStop moves Start or Running to Idle and returns the resulting state.
//
// Safe to call multiple times; Idle is a no-op.
func (c *Controller) RequestStop() State {
	for {
		cur := c.Load()
		if cur == Idle {
			return Idle
		}
		if c.cas(cur, Idle) {
			return Idle
		}
	}
}

// Begin moves Start to Running. Only the producer calls Begin.
// Returns false if the state was not Start.
func (c *Controller) Begin() bool {
	return c.cas(Start, Running)
}

// Finish moves Running to Idle. Only the producer calls Finish.
//
// Returns false if the state already left Running, either because the run
// was stopped or because a stop was followed by a new start request. In
// the latter case the pending Start is preserved for the next Begin.
func (c *Controller) Finish() bool {
	return c.cas(Running, Idle)
}

func (c *Controller) cas(from, to State) bool {
	if !c.state.CompareAndSwap(int32(from), int32(to)) {
		return false
	}

	c.mu.RLock()
	observers := c.observers
	c.mu.RUnlock()

	for _, fn := range observers {
		fn(from, to)
	}
	return true
}
