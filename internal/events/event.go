// Package events carries engine notifications to the host.
//
// The producer and every consumer emit events into their own lane of a
// sharded lock-free ring (github.com/randomizedcoder/go-lock-free-ring).
// A single dispatcher goroutine drains the ring and calls the registered
// hooks. This keeps host rendering off the producer and consumer goroutines
// and out of every critical section.
//
// # Ordering
//
// Events from one lane are delivered in emission order. Events from
// different lanes may interleave arbitrarily.
package events

import (
	"fmt"

	"github.com/randomizedcoder/prodcons/internal/record"
)

// Kind identifies an event.
type Kind uint8

const (
	// Produced carries a record the producer enqueued.
	Produced Kind = iota + 1
	// Consumed carries a record a consumer dequeued.
	Consumed
	// PaneClear asks the host to clear one pane.
	PaneClear
	// Label asks the host to relabel its start control.
	Label
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Produced:
		return "produced"
	case Consumed:
		return "consumed"
	case PaneClear:
		return "pane_clear"
	case Label:
		return "label"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Pane is one of the two host display panes.
type Pane uint8

const (
	PaneProduced Pane = iota
	PaneConsumed
)

// String implements fmt.Stringer.
func (p Pane) String() string {
	if p == PaneConsumed {
		return "consumed"
	}
	return "produced"
}

// Start control labels.
const (
	LabelStart = "Start" // idle, pressing starts a run
	LabelRun   = "Run"   // running, pressing stops the run
)

// Event is a single notification.
type Event struct {
	Kind     Kind
	Record   record.Record // Produced, Consumed
	Consumer int           // Consumed: 1-based consumer ID
	Pane     Pane          // PaneClear
	Label    string        // Label
	RunID    string
}
